package adaptor

import (
	"context"
	"io"

	"cineacme/internal/dto/request"
	"cineacme/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type mockScreeningService struct {
	mock.Mock
}

func (m *mockScreeningService) CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*response.ScreeningResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScreeningService) UpdateScreening(ctx context.Context, id string, req *request.ScreeningUpdateRequest) (*response.ScreeningResponse, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*response.ScreeningResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScreeningService) DeleteScreening(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockScreeningService) GetScreening(ctx context.Context, id string) (*response.ScreeningDetailResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*response.ScreeningDetailResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScreeningService) ListScreenings(ctx context.Context) ([]response.ScreeningDetailResponse, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]response.ScreeningDetailResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) ByCinemaAndDate(ctx context.Context, cinemaID, date string) ([]response.ScreeningDetailResponse, error) {
	args := m.Called(ctx, cinemaID, date)
	if v := args.Get(0); v != nil {
		return v.([]response.ScreeningDetailResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) ByMovieAndCinema(ctx context.Context, movieID, cinemaID string) ([]response.ScreeningDetailResponse, error) {
	args := m.Called(ctx, movieID, cinemaID)
	if v := args.Get(0); v != nil {
		return v.([]response.ScreeningDetailResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) ByDateRange(ctx context.Context, startDate, endDate string) ([]response.DateRangeGroup, error) {
	args := m.Called(ctx, startDate, endDate)
	if v := args.Get(0); v != nil {
		return v.([]response.DateRangeGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportService) ExportDateRange(ctx context.Context, startDate, endDate string, w io.Writer) error {
	args := m.Called(ctx, startDate, endDate, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "xlsx-bytes")
	return err
}

type mockCinemaService struct {
	mock.Mock
}

func (m *mockCinemaService) GetCinemas(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.CinemaResponse], error) {
	args := m.Called(ctx, req, cityFilter)
	if v := args.Get(0); v != nil {
		return v.(*response.PaginatedResponse[response.CinemaResponse]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCinemaService) GetCinemaByID(ctx context.Context, id string) (*response.CinemaDetailResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*response.CinemaDetailResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCinemaService) CreateCinema(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*response.CinemaResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCinemaService) UpdateCinema(ctx context.Context, id string, req *request.CinemaUpdateRequest) (*response.CinemaResponse, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*response.CinemaResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCinemaService) DeleteCinema(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
