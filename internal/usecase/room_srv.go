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

type RoomService interface {
	GetRooms(ctx context.Context, req *request.PaginatedRequest, cinemaFilter *string) (*response.PaginatedResponse[response.RoomResponse], error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error)

	CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type roomService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewRoomService(repo *repository.Repository, clock Clock, log *zap.Logger) RoomService {
	return &roomService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context, req *request.PaginatedRequest, cinemaFilter *string) (*response.PaginatedResponse[response.RoomResponse], error) {
	var filter *uuid.UUID
	if cinemaFilter != nil {
		id, err := uuid.Parse(*cinemaFilter)
		if err != nil {
			// an unknown cinema has no rooms
			return response.NewPaginatedResponse([]response.RoomResponse{}, req.Page, req.Limit(), 0), nil
		}
		filter = &id
	}

	rooms, err := s.repo.Room.FindAll(ctx, req.Limit(), req.Offset(), filter)
	if err != nil {
		s.log.Error("Failed to get rooms", zap.Error(err), zap.Stringp("cinema_id", cinemaFilter))
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	total, err := s.repo.Room.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count rooms", zap.Error(err))
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return response.NewPaginatedResponse(roomResponses, req.Page, req.Limit(), total), nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	roomResp := response.RoomToResponse(room)
	return &roomResp, nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create room validation failed", zap.Error(err))
		return nil, err
	}

	cinema, err := s.findCinema(ctx, req.CinemaID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCodeFree(ctx, req.Code, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CinemaID: cinema.ID,
		Code:     req.Code,
		NumSeats: req.NumSeats,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, roomCodeTaken(room.Code)
		}
		s.log.Error("Failed to create room", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("cinema_id", cinema.ID.String()),
		zap.String("code", room.Code),
		zap.Int("num_seats", room.NumSeats),
	)

	roomResp := response.RoomToResponse(room)
	return &roomResp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.CinemaID != nil && *req.CinemaID != room.CinemaID.String() {
		cinema, err := s.findCinema(ctx, *req.CinemaID)
		if err != nil {
			return nil, err
		}
		// screenings carry the cinema of their room
		screenings, err := s.repo.Screening.CountByRoomID(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("count screenings of room %s: %w", roomID, err)
		}
		if screenings > 0 {
			s.log.Warn("Room move refused, screenings scheduled",
				zap.String("room_id", roomID),
				zap.String("cinema_id", cinema.ID.String()),
				zap.Int64("screenings", screenings),
			)
			return nil, &ConflictError{Message: fmt.Sprintf("room still has %d screening(s)", screenings)}
		}
		room.CinemaID = cinema.ID
		updated = true
	}
	if req.Code != nil && *req.Code != room.Code {
		if err := s.ensureCodeFree(ctx, *req.Code, room.ID); err != nil {
			return nil, err
		}
		room.Code = *req.Code
		updated = true
	}
	if req.NumSeats != nil && *req.NumSeats != room.NumSeats {
		room.NumSeats = *req.NumSeats
		updated = true
	}

	if !updated {
		roomResp := response.RoomToResponse(room)
		return &roomResp, nil
	}

	room.UpdatedAt = s.clock.Now()
	if err := s.repo.Room.Update(ctx, room); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, roomCodeTaken(room.Code)
		case errors.Is(err, repository.ErrNotFound):
			return nil, &NotFoundError{Entity: "room", ID: roomID}
		}
		s.log.Error("Failed to update room", zap.Error(err), zap.String("room_id", roomID))
		return nil, fmt.Errorf("update room %s: %w", roomID, err)
	}

	s.log.Info("Room updated", zap.String("room_id", roomID))

	roomResp := response.RoomToResponse(room)
	return &roomResp, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, roomID string) error {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return err
	}

	screenings, err := s.repo.Screening.CountByRoomID(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("count screenings of room %s: %w", roomID, err)
	}
	if screenings > 0 {
		return &ConflictError{Message: fmt.Sprintf("room still has %d screening(s)", screenings)}
	}

	if err := s.repo.Room.Delete(ctx, room.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Entity: "room", ID: roomID}
		}
		s.log.Error("Failed to delete room", zap.Error(err), zap.String("room_id", roomID))
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}

	s.log.Info("Room deleted", zap.String("room_id", roomID))
	return nil
}

func (s *roomService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, &NotFoundError{Entity: "room", ID: roomID}
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get room by ID", zap.Error(err), zap.String("room_id", roomID))
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, &NotFoundError{Entity: "room", ID: roomID}
	}
	return room, nil
}

func (s *roomService) findCinema(ctx context.Context, cinemaID string) (*entity.Cinema, error) {
	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, &NotFoundError{Entity: "cinema", ID: cinemaID}
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get cinema %s: %w", cinemaID, err)
	}
	if cinema == nil {
		return nil, &NotFoundError{Entity: "cinema", ID: cinemaID}
	}
	return cinema, nil
}

func (s *roomService) ensureCodeFree(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.repo.Room.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("check room code: %w", err)
	}
	if existing != nil && existing.ID != self {
		return roomCodeTaken(code)
	}
	return nil
}

func roomCodeTaken(code string) error {
	return newValidationError(fmt.Sprintf("room code %q is already in use", code))
}
