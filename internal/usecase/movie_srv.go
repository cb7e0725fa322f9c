package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"
	"cineacme/internal/dto/request"
	"cineacme/internal/dto/response"
	"cineacme/internal/scheduling"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	// search matches title, genre or director
	GetMovies(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)

	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewMovieService(repo *repository.Repository, clock Clock, log *zap.Logger) MovieService {
	return &movieService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, search *string) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, req.Limit(), req.Offset(), search)
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err), zap.Stringp("search", search))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, search)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err), zap.Stringp("search", search))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, req.Limit(), total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	releaseDate, err := time.Parse(scheduling.DateLayout, req.ReleaseDate)
	if err != nil {
		return nil, newValidationError("release_date must be a valid date in YYYY-MM-DD format")
	}

	if err := s.ensureCodeFree(ctx, req.Code, uuid.Nil); err != nil {
		return nil, err
	}

	cast := req.Cast
	if cast == nil {
		cast = []string{}
	}

	now := s.clock.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:            req.Code,
		Title:           req.Title,
		Synopsis:        req.Synopsis,
		Cast:            cast,
		Classification:  req.Classification,
		Language:        req.Language,
		Director:        req.Director,
		DurationMinutes: req.DurationMinutes,
		Genre:           req.Genre,
		ReleaseDate:     releaseDate,
		TrailerURL:      req.TrailerURL,
		PosterURL:       req.PosterURL,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, movieCodeTaken(movie.Code)
		}
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("code", req.Code))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("code", movie.Code),
		zap.String("title", movie.Title),
		zap.Int("duration", movie.DurationMinutes),
	)

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	updated := false
	durationChanged := false

	if req.Code != nil && *req.Code != movie.Code {
		if err := s.ensureCodeFree(ctx, *req.Code, movie.ID); err != nil {
			return nil, err
		}
		movie.Code = *req.Code
		updated = true
	}
	if req.Title != nil && *req.Title != movie.Title {
		movie.Title = *req.Title
		updated = true
	}
	if req.Synopsis != nil && *req.Synopsis != movie.Synopsis {
		movie.Synopsis = *req.Synopsis
		updated = true
	}
	if req.Cast != nil {
		movie.Cast = req.Cast
		updated = true
	}
	if req.Classification != nil && *req.Classification != movie.Classification {
		movie.Classification = *req.Classification
		updated = true
	}
	if req.Language != nil && *req.Language != movie.Language {
		movie.Language = *req.Language
		updated = true
	}
	if req.Director != nil && *req.Director != movie.Director {
		movie.Director = *req.Director
		updated = true
	}
	if req.DurationMinutes != nil && *req.DurationMinutes != movie.DurationMinutes {
		movie.DurationMinutes = *req.DurationMinutes
		updated = true
		durationChanged = true
	}
	if req.Genre != nil && *req.Genre != movie.Genre {
		movie.Genre = *req.Genre
		updated = true
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse(scheduling.DateLayout, *req.ReleaseDate)
		if err != nil {
			return nil, newValidationError("release_date must be a valid date in YYYY-MM-DD format")
		}
		if !releaseDate.Equal(movie.ReleaseDate) {
			movie.ReleaseDate = releaseDate
			updated = true
		}
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = req.TrailerURL
		updated = true
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
		updated = true
	}

	if !updated {
		movieResp := response.MovieToResponse(movie)
		return &movieResp, nil
	}

	movie.UpdatedAt = s.clock.Now()
	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, movieCodeTaken(movie.Code)
		case errors.Is(err, repository.ErrNotFound):
			return nil, &NotFoundError{Entity: "movie", ID: movieID}
		}
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("update movie %s: %w", movieID, err)
	}

	// existing screenings keep the duration they were scheduled with
	if durationChanged {
		n, err := s.repo.Screening.CountByMovieID(ctx, movie.ID)
		if err == nil && n > 0 {
			s.log.Warn("Movie duration changed but scheduled screenings keep the old end times",
				zap.String("movie_id", movieID),
				zap.Int("duration", movie.DurationMinutes),
				zap.Int64("screenings", n),
			)
		}
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	movieResp := response.MovieToResponse(movie)
	return &movieResp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return err
	}

	screenings, err := s.repo.Screening.CountByMovieID(ctx, movie.ID)
	if err != nil {
		return fmt.Errorf("count screenings of movie %s: %w", movieID, err)
	}
	if screenings > 0 {
		return &ConflictError{Message: fmt.Sprintf("movie still has %d screening(s)", screenings)}
	}

	if err := s.repo.Movie.Delete(ctx, movie.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Entity: "movie", ID: movieID}
		}
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie %s: %w", movieID, err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, &NotFoundError{Entity: "movie", ID: movieID}
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie %s: %w", movieID, err)
	}
	if movie == nil {
		return nil, &NotFoundError{Entity: "movie", ID: movieID}
	}
	return movie, nil
}

func (s *movieService) ensureCodeFree(ctx context.Context, code string, self uuid.UUID) error {
	existing, err := s.repo.Movie.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("check movie code: %w", err)
	}
	if existing != nil && existing.ID != self {
		return movieCodeTaken(code)
	}
	return nil
}

func movieCodeTaken(code string) error {
	return newValidationError(fmt.Sprintf("movie code %q is already in use", code))
}
