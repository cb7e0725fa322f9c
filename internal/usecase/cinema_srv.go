package usecase

import (
	"context"
	"errors"
	"fmt"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"
	"cineacme/internal/dto/request"
	"cineacme/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CinemaService interface {
	GetCinemas(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.CinemaResponse], error)
	GetCinemaByID(ctx context.Context, cinemaID string) (*response.CinemaDetailResponse, error)

	CreateCinema(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error)
	UpdateCinema(ctx context.Context, cinemaID string, req *request.CinemaUpdateRequest) (*response.CinemaResponse, error)
	DeleteCinema(ctx context.Context, cinemaID string) error
}

type cinemaService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewCinemaService(repo *repository.Repository, clock Clock, log *zap.Logger) CinemaService {
	return &cinemaService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "cinema")),
	}
}

func (s *cinemaService) GetCinemas(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.CinemaResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	cinemas, err := s.repo.Cinema.FindAll(ctx, limit, offset, cityFilter)
	if err != nil {
		s.log.Error("Failed to get cinemas from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("city_filter", cityFilter),
		)
		return nil, fmt.Errorf("get cinemas: %w", err)
	}

	total, err := s.repo.Cinema.CountAll(ctx, cityFilter)
	if err != nil {
		s.log.Error("Failed to count cinemas", zap.Error(err), zap.Stringp("city_filter", cityFilter))
		return nil, fmt.Errorf("count cinemas: %w", err)
	}

	cinemaResponses := make([]response.CinemaResponse, len(cinemas))
	for i, cinema := range cinemas {
		cinemaResponses[i] = response.CinemaToResponse(cinema)
	}

	return response.NewPaginatedResponse(cinemaResponses, req.Page, limit, total), nil
}

func (s *cinemaService) GetCinemaByID(ctx context.Context, cinemaID string) (*response.CinemaDetailResponse, error) {
	cinema, err := s.findCinema(ctx, cinemaID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.Room.FindByCinemaID(ctx, cinema.ID)
	if err != nil {
		s.log.Error("Failed to get rooms for cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("get rooms for cinema %s: %w", cinemaID, err)
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return &response.CinemaDetailResponse{
		CinemaResponse: response.CinemaToResponse(cinema),
		Rooms:          roomResponses,
	}, nil
}

func (s *cinemaService) CreateCinema(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create cinema validation failed", zap.Error(err))
		return nil, err
	}

	if err := s.ensureCodeFree(ctx, req.Code, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	cinema := &entity.Cinema{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	}

	if err := s.repo.Cinema.Create(ctx, cinema); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, cinemaCodeTaken(cinema.Code)
		}
		s.log.Error("Failed to create cinema", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("create cinema: %w", err)
	}

	s.log.Info("Cinema created",
		zap.String("cinema_id", cinema.ID.String()),
		zap.String("code", cinema.Code),
		zap.String("city", cinema.City),
	)

	cinemaResp := response.CinemaToResponse(cinema)
	return &cinemaResp, nil
}

func (s *cinemaService) UpdateCinema(ctx context.Context, cinemaID string, req *request.CinemaUpdateRequest) (*response.CinemaResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cinema, err := s.findCinema(ctx, cinemaID)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.Code != nil && *req.Code != cinema.Code {
		if err := s.ensureCodeFree(ctx, *req.Code, cinema.ID); err != nil {
			return nil, err
		}
		cinema.Code = *req.Code
		updated = true
	}
	if req.Name != nil && *req.Name != cinema.Name {
		cinema.Name = *req.Name
		updated = true
	}
	if req.Address != nil && *req.Address != cinema.Address {
		cinema.Address = *req.Address
		updated = true
	}
	if req.City != nil && *req.City != cinema.City {
		cinema.City = *req.City
		updated = true
	}

	if !updated {
		cinemaResp := response.CinemaToResponse(cinema)
		return &cinemaResp, nil
	}

	cinema.UpdatedAt = s.clock.Now()
	if err := s.repo.Cinema.Update(ctx, cinema); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, cinemaCodeTaken(cinema.Code)
		case errors.Is(err, repository.ErrNotFound):
			return nil, &NotFoundError{Entity: "cinema", ID: cinemaID}
		}
		s.log.Error("Failed to update cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("update cinema %s: %w", cinemaID, err)
	}

	s.log.Info("Cinema updated", zap.String("cinema_id", cinemaID))

	cinemaResp := response.CinemaToResponse(cinema)
	return &cinemaResp, nil
}

func (s *cinemaService) DeleteCinema(ctx context.Context, cinemaID string) error {
	cinema, err := s.findCinema(ctx, cinemaID)
	if err != nil {
		return err
	}

	rooms, err := s.repo.Room.CountByCinemaID(ctx, cinema.ID)
	if err != nil {
		return fmt.Errorf("count rooms of cinema %s: %w", cinemaID, err)
	}
	if rooms > 0 {
		return &ConflictError{Message: fmt.Sprintf("cinema still has %d room(s)", rooms)}
	}

	if err := s.repo.Cinema.Delete(ctx, cinema.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Entity: "cinema", ID: cinemaID}
		}
		s.log.Error("Failed to delete cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return fmt.Errorf("delete cinema %s: %w", cinemaID, err)
	}

	s.log.Info("Cinema deleted", zap.String("cinema_id", cinemaID))
	return nil
}

func (s *cinemaService) findCinema(ctx context.Context, cinemaID string) (*entity.Cinema, error) {
	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, &NotFoundError{Entity: "cinema", ID: cinemaID}
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get cinema by ID", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("get cinema %s: %w", cinemaID, err)
	}
	if cinema == nil {
		return nil, &NotFoundError{Entity: "cinema", ID: cinemaID}
	}
	return cinema, nil
}

func (s *cinemaService) ensureCodeFree(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.repo.Cinema.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("check cinema code: %w", err)
	}
	if existing != nil && existing.ID != self {
		return cinemaCodeTaken(code)
	}
	return nil
}

func cinemaCodeTaken(code string) error {
	return newValidationError(fmt.Sprintf("cinema code %q is already in use", code))
}
