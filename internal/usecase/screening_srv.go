package usecase

import (
	"context"
	"errors"
	"fmt"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"
	"cineacme/internal/dto/request"
	"cineacme/internal/dto/response"
	"cineacme/internal/scheduling"
	"cineacme/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningUpdateRequest) (*response.ScreeningResponse, error)
	DeleteScreening(ctx context.Context, screeningID string) error
	GetScreening(ctx context.Context, screeningID string) (*response.ScreeningDetailResponse, error)
	ListScreenings(ctx context.Context) ([]response.ScreeningDetailResponse, error)
}

type screeningService struct {
	repo    *repository.Repository
	clock   Clock
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewScreeningService(repo *repository.Repository, clock Clock, m *metrics.Metrics, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo:    repo,
		clock:   clock,
		metrics: m,
		log:     log.With(zap.String("service", "screening")),
	}
}

// screeningFields is the merged view of a write request that gets validated.
type screeningFields struct {
	CinemaID  string
	RoomID    string
	MovieID   string
	Date      string
	StartTime string
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	screening, err := s.createScreening(ctx, req)
	s.observe("create", metrics.ResultCreated, err)
	if err != nil {
		return nil, err
	}

	res := response.ScreeningToResponse(screening)
	return &res, nil
}

func (s *screeningService) createScreening(ctx context.Context, req *request.ScreeningRequest) (*entity.Screening, error) {
	movie, err := s.findMovie(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}

	fields := screeningFields{
		CinemaID:  req.CinemaID,
		RoomID:    req.RoomID,
		MovieID:   req.MovieID,
		Date:      req.Date,
		StartTime: req.StartTime,
	}
	msgs := validateScreeningFields(fields)
	if scheduling.ValidDate(fields.Date) && fields.Date < s.clock.Today() {
		msgs = append(msgs, "date cannot be earlier than today")
	}
	if len(msgs) > 0 {
		s.log.Warn("Screening validation failed", zap.Strings("errors", msgs))
		return nil, newValidationError(msgs...)
	}

	cinema, room, err := s.findCinemaAndRoom(ctx, fields.CinemaID, fields.RoomID)
	if err != nil {
		return nil, err
	}

	start, _ := scheduling.NormalizeClock(fields.StartTime)
	end, err := scheduling.EndTime(start, movie.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("compute end time: %w", err)
	}

	now := s.clock.Now()
	screening := &entity.Screening{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CinemaID:        cinema.ID,
		RoomID:          room.ID,
		MovieID:         movie.ID,
		ShowDate:        fields.Date,
		StartTime:       start,
		DurationMinutes: movie.DurationMinutes,
		EndTime:         end,
	}

	err = s.placeInSlot(ctx, screening, func(tx repository.ScreeningRepository) error {
		return tx.Create(ctx, screening)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.String("date", screening.ShowDate),
		zap.String("start_time", screening.StartTime),
		zap.String("end_time", screening.EndTime),
	)

	return screening, nil
}

func (s *screeningService) UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningUpdateRequest) (*response.ScreeningResponse, error) {
	screening, err := s.updateScreening(ctx, screeningID, req)
	s.observe("update", metrics.ResultUpdated, err)
	if err != nil {
		return nil, err
	}

	res := response.ScreeningToResponse(screening)
	return &res, nil
}

func (s *screeningService) updateScreening(ctx context.Context, screeningID string, req *request.ScreeningUpdateRequest) (*entity.Screening, error) {
	screening, err := s.findScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	duration := screening.DurationMinutes
	movieID := screening.MovieID
	if req.MovieID != nil && *req.MovieID != screening.MovieID.String() {
		movie, err := s.findMovie(ctx, *req.MovieID)
		if err != nil {
			return nil, err
		}
		duration = movie.DurationMinutes
		movieID = movie.ID
	}

	fields := screeningFields{
		CinemaID:  screening.CinemaID.String(),
		RoomID:    screening.RoomID.String(),
		MovieID:   movieID.String(),
		Date:      screening.ShowDate,
		StartTime: screening.StartTime,
	}
	if req.CinemaID != nil {
		fields.CinemaID = *req.CinemaID
	}
	if req.RoomID != nil {
		fields.RoomID = *req.RoomID
	}
	if req.Date != nil {
		fields.Date = *req.Date
	}
	if req.StartTime != nil {
		fields.StartTime = *req.StartTime
	}

	// past dates are only refused at creation
	if msgs := validateScreeningFields(fields); len(msgs) > 0 {
		s.log.Warn("Screening validation failed",
			zap.String("screening_id", screeningID),
			zap.Strings("errors", msgs),
		)
		return nil, newValidationError(msgs...)
	}

	cinema, room, err := s.findCinemaAndRoom(ctx, fields.CinemaID, fields.RoomID)
	if err != nil {
		return nil, err
	}

	start, _ := scheduling.NormalizeClock(fields.StartTime)
	end, err := scheduling.EndTime(start, duration)
	if err != nil {
		return nil, fmt.Errorf("compute end time: %w", err)
	}

	updated := *screening
	updated.CinemaID = cinema.ID
	updated.RoomID = room.ID
	updated.MovieID = movieID
	updated.ShowDate = fields.Date
	updated.StartTime = start
	updated.DurationMinutes = duration
	updated.EndTime = end
	updated.UpdatedAt = s.clock.Now()

	err = s.placeInSlot(ctx, &updated, func(tx repository.ScreeningRepository) error {
		return tx.Update(ctx, &updated)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Entity: "screening", ID: screeningID}
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Screening updated",
		zap.String("screening_id", updated.ID.String()),
		zap.String("date", updated.ShowDate),
		zap.String("start_time", updated.StartTime),
		zap.String("end_time", updated.EndTime),
	)

	return &updated, nil
}

// placeInSlot runs the overlap check for screening's room and date and then
// write, both under the slot lock. screening itself is ignored by the check.
func (s *screeningService) placeInSlot(ctx context.Context, screening *entity.Screening, write func(tx repository.ScreeningRepository) error) error {
	slot, err := scheduling.NewSlot(screening.StartTime, screening.EndTime)
	if err != nil {
		return fmt.Errorf("build slot: %w", err)
	}

	err = s.repo.Screening.WithinSlotLock(ctx, screening.RoomID, screening.ShowDate, func(tx repository.ScreeningRepository) error {
		existing, err := tx.FindByRoomAndDate(ctx, screening.RoomID, screening.ShowDate)
		if err != nil {
			return fmt.Errorf("load room schedule: %w", err)
		}

		if clash := scheduling.FindConflict(existing, slot, screening.ID); clash != nil {
			return &ConflictError{
				Message: fmt.Sprintf("room already has a screening from %s to %s on %s",
					clash.StartTime, clash.EndTime, clash.ShowDate),
				Existing: clash,
			}
		}

		return write(tx)
	})

	var conflict *ConflictError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &conflict):
		s.log.Warn("Screening conflicts with existing schedule",
			zap.String("room_id", screening.RoomID.String()),
			zap.String("date", screening.ShowDate),
			zap.String("start_time", screening.StartTime),
			zap.String("existing_id", conflict.Existing.ID.String()),
		)
		return conflict
	case errors.Is(err, repository.ErrDuplicate):
		return &ConflictError{
			Message: fmt.Sprintf("room already has a screening starting at %s on %s",
				screening.StartTime, screening.ShowDate),
		}
	case errors.Is(err, repository.ErrNotFound):
		return err
	default:
		s.log.Error("Failed to store screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("store screening %s: %w", screening.ID, err)
	}
}

func (s *screeningService) DeleteScreening(ctx context.Context, screeningID string) error {
	err := s.deleteScreening(ctx, screeningID)
	s.observe("delete", metrics.ResultDeleted, err)
	return err
}

func (s *screeningService) deleteScreening(ctx context.Context, screeningID string) error {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return &NotFoundError{Entity: "screening", ID: screeningID}
	}

	if err := s.repo.Screening.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Entity: "screening", ID: screeningID}
		}
		s.log.Error("Failed to delete screening", zap.Error(err), zap.String("screening_id", screeningID))
		return fmt.Errorf("delete screening %s: %w", screeningID, err)
	}

	s.log.Info("Screening deleted", zap.String("screening_id", screeningID))
	return nil
}

func (s *screeningService) GetScreening(ctx context.Context, screeningID string) (*response.ScreeningDetailResponse, error) {
	screening, err := s.findScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	detail := &entity.ScreeningDetail{Screening: *screening}

	cinema, err := s.repo.Cinema.FindByID(ctx, screening.CinemaID)
	if err != nil {
		return nil, fmt.Errorf("get cinema %s: %w", screening.CinemaID, err)
	}
	if cinema != nil {
		detail.CinemaName = cinema.Name
	}

	room, err := s.repo.Room.FindByID(ctx, screening.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", screening.RoomID, err)
	}
	if room != nil {
		detail.RoomCode = room.Code
	}

	movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", screening.MovieID, err)
	}
	if movie != nil {
		detail.MovieTitle = movie.Title
		detail.MovieDuration = movie.DurationMinutes
	}

	res := response.ScreeningDetailToResponse(detail)
	return &res, nil
}

func (s *screeningService) ListScreenings(ctx context.Context) ([]response.ScreeningDetailResponse, error) {
	details, err := s.repo.Screening.FindDetails(ctx, repository.ScreeningFilter{})
	if err != nil {
		s.log.Error("Failed to list screenings", zap.Error(err))
		return nil, fmt.Errorf("list screenings: %w", err)
	}

	return response.ScreeningDetailsToResponse(details), nil
}

func (s *screeningService) findScreening(ctx context.Context, screeningID string) (*entity.Screening, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, &NotFoundError{Entity: "screening", ID: screeningID}
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get screening", zap.Error(err), zap.String("screening_id", screeningID))
		return nil, fmt.Errorf("get screening %s: %w", screeningID, err)
	}
	if screening == nil {
		return nil, &NotFoundError{Entity: "screening", ID: screeningID}
	}
	return screening, nil
}

// findMovie treats a malformed id the same as an unknown one.
func (s *screeningService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, &NotFoundError{Entity: "movie", ID: movieID}
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, &NotFoundError{Entity: "movie", ID: movieID}
	}
	return movie, nil
}

func (s *screeningService) findCinemaAndRoom(ctx context.Context, cinemaID, roomID string) (*entity.Cinema, *entity.Room, error) {
	cid, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, nil, &NotFoundError{Entity: "cinema", ID: cinemaID}
	}
	cinema, err := s.repo.Cinema.FindByID(ctx, cid)
	if err != nil {
		return nil, nil, fmt.Errorf("get cinema %s: %w", cinemaID, err)
	}
	if cinema == nil {
		return nil, nil, &NotFoundError{Entity: "cinema", ID: cinemaID}
	}

	rid, err := uuid.Parse(roomID)
	if err != nil {
		return nil, nil, &NotFoundError{Entity: "room", ID: roomID}
	}
	room, err := s.repo.Room.FindByID(ctx, rid)
	if err != nil {
		return nil, nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, nil, &NotFoundError{Entity: "room", ID: roomID}
	}

	if room.CinemaID != cinema.ID {
		s.log.Warn("Room belongs to another cinema",
			zap.String("room_id", roomID),
			zap.String("room_cinema_id", room.CinemaID.String()),
			zap.String("cinema_id", cinemaID),
		)
		return nil, nil, newValidationError("room does not belong to cinema")
	}

	return cinema, room, nil
}

func (s *screeningService) observe(operation, success string, err error) {
	if err == nil {
		s.metrics.ObserveSchedule(operation, success)
		return
	}

	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		s.metrics.ObserveSchedule(operation, metrics.ResultInvalid)
	case errors.As(err, &notFoundErr):
		s.metrics.ObserveSchedule(operation, metrics.ResultNotFound)
	case errors.As(err, &conflictErr):
		s.metrics.ObserveSchedule(operation, metrics.ResultConflict)
	default:
		s.metrics.ObserveSchedule(operation, metrics.ResultStoreError)
	}
}

// validateScreeningFields collects every structural problem of a screening
// write. Existence of the referenced records is checked separately.
func validateScreeningFields(f screeningFields) []string {
	var msgs []string

	if f.CinemaID == "" {
		msgs = append(msgs, "cinema_id is required")
	}
	if f.RoomID == "" {
		msgs = append(msgs, "room_id is required")
	}
	if f.MovieID == "" {
		msgs = append(msgs, "movie_id is required")
	}

	switch {
	case f.Date == "":
		msgs = append(msgs, "date is required")
	case !scheduling.ValidDate(f.Date):
		msgs = append(msgs, "date must be a valid date in YYYY-MM-DD format")
	}

	switch {
	case f.StartTime == "":
		msgs = append(msgs, "start_time is required")
	default:
		if _, err := scheduling.ParseClock(f.StartTime); err != nil {
			msgs = append(msgs, "start_time must be in HH:MM 24-hour format")
		}
	}

	return msgs
}
