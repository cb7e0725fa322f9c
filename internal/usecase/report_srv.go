package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"
	"cineacme/internal/dto/response"
	"cineacme/internal/scheduling"
	"cineacme/pkg/export"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportService interface {
	ByCinemaAndDate(ctx context.Context, cinemaID, date string) ([]response.ScreeningDetailResponse, error)
	// ByMovieAndCinema lists upcoming screenings, today included.
	ByMovieAndCinema(ctx context.Context, movieID, cinemaID string) ([]response.ScreeningDetailResponse, error)
	ByDateRange(ctx context.Context, startDate, endDate string) ([]response.DateRangeGroup, error)
	ExportDateRange(ctx context.Context, startDate, endDate string, w io.Writer) error
}

type reportService struct {
	repo  *repository.Repository
	clock Clock
	log   *zap.Logger
}

func NewReportService(repo *repository.Repository, clock Clock, log *zap.Logger) ReportService {
	return &reportService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "report")),
	}
}

func (s *reportService) ByCinemaAndDate(ctx context.Context, cinemaID, date string) ([]response.ScreeningDetailResponse, error) {
	switch {
	case date == "":
		return nil, newValidationError("date is required")
	case !scheduling.ValidDate(date):
		return nil, newValidationError("date must be a valid date in YYYY-MM-DD format")
	}

	cid, err := uuid.Parse(cinemaID)
	if err != nil {
		return []response.ScreeningDetailResponse{}, nil
	}

	return s.find(ctx, repository.ScreeningFilter{
		CinemaID: &cid,
		DateFrom: date,
		DateTo:   date,
	})
}

func (s *reportService) ByMovieAndCinema(ctx context.Context, movieID, cinemaID string) ([]response.ScreeningDetailResponse, error) {
	mid, err := uuid.Parse(movieID)
	if err != nil {
		return []response.ScreeningDetailResponse{}, nil
	}
	cid, err := uuid.Parse(cinemaID)
	if err != nil {
		return []response.ScreeningDetailResponse{}, nil
	}

	return s.find(ctx, repository.ScreeningFilter{
		CinemaID: &cid,
		MovieID:  &mid,
		DateFrom: s.clock.Today(),
	})
}

func (s *reportService) find(ctx context.Context, filter repository.ScreeningFilter) ([]response.ScreeningDetailResponse, error) {
	details, err := s.repo.Screening.FindDetails(ctx, filter)
	if err != nil {
		s.log.Error("Failed to query screenings", zap.Error(err))
		return nil, fmt.Errorf("query screenings: %w", err)
	}
	return response.ScreeningDetailsToResponse(details), nil
}

func (s *reportService) ByDateRange(ctx context.Context, startDate, endDate string) ([]response.DateRangeGroup, error) {
	details, err := s.dateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return groupByDateMovieCinema(details), nil
}

func (s *reportService) dateRange(ctx context.Context, startDate, endDate string) ([]*entity.ScreeningDetail, error) {
	var msgs []string
	if !scheduling.ValidDate(startDate) {
		msgs = append(msgs, "start_date must be a valid date in YYYY-MM-DD format")
	}
	if !scheduling.ValidDate(endDate) {
		msgs = append(msgs, "end_date must be a valid date in YYYY-MM-DD format")
	}
	if len(msgs) == 0 && startDate > endDate {
		msgs = append(msgs, "start_date cannot be after end_date")
	}
	if len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	details, err := s.repo.Screening.FindDetails(ctx, repository.ScreeningFilter{
		DateFrom: startDate,
		DateTo:   endDate,
	})
	if err != nil {
		s.log.Error("Failed to query screenings by date range",
			zap.Error(err),
			zap.String("start_date", startDate),
			zap.String("end_date", endDate),
		)
		return nil, fmt.Errorf("query screenings %s..%s: %w", startDate, endDate, err)
	}
	return details, nil
}

var exportColumns = []string{
	"Date", "Movie", "Cinema", "Room", "Start", "End", "Duration (min)",
}

func (s *reportService) ExportDateRange(ctx context.Context, startDate, endDate string, w io.Writer) error {
	details, err := s.dateRange(ctx, startDate, endDate)
	if err != nil {
		return err
	}

	wb := export.NewWorkbook()
	defer wb.Close()

	if err := wb.AddSheet("Screenings"); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := wb.WriteHeader(exportColumns); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, d := range details {
		err := wb.WriteRow(d.ShowDate, d.MovieTitle, d.CinemaName, d.RoomCode, d.StartTime, d.EndTime, d.DurationMinutes)
		if err != nil {
			return fmt.Errorf("export row %s: %w", d.ID, err)
		}
	}

	if err := wb.Save(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	s.log.Info("Screening report exported",
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("rows", len(details)),
	)
	return nil
}

type groupKey struct {
	date     string
	movieID  uuid.UUID
	cinemaID uuid.UUID
}

// groupByDateMovieCinema folds screenings into one entry per date, movie and
// cinema, ordered by date, movie title, then cinema name.
func groupByDateMovieCinema(details []*entity.ScreeningDetail) []response.DateRangeGroup {
	groups := []response.DateRangeGroup{}
	index := make(map[groupKey]int)
	rooms := make(map[groupKey]map[uuid.UUID]struct{})

	for _, d := range details {
		key := groupKey{date: d.ShowDate, movieID: d.MovieID, cinemaID: d.CinemaID}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			rooms[key] = make(map[uuid.UUID]struct{})
			groups = append(groups, response.DateRangeGroup{
				Date:       d.ShowDate,
				MovieID:    d.MovieID.String(),
				CinemaID:   d.CinemaID.String(),
				Movie:      response.ScreeningMovie{Title: d.MovieTitle, Duration: d.MovieDuration},
				Cinema:     response.ScreeningCinema{Name: d.CinemaName},
				Screenings: []response.ScreeningDetailResponse{},
			})
		}
		rooms[key][d.RoomID] = struct{}{}
		groups[i].RoomCount = len(rooms[key])
		groups[i].Screenings = append(groups[i].Screenings, response.ScreeningDetailToResponse(d))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Movie.Title != b.Movie.Title {
			return a.Movie.Title < b.Movie.Title
		}
		return a.Cinema.Name < b.Cinema.Name
	})
	return groups
}
