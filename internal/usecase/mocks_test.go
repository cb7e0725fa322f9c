package usecase

import (
	"context"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockMovieRepo struct {
	mock.Mock
}

func (m *mockMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*entity.Movie)
	return movie, args.Error(1)
}

func (m *mockMovieRepo) FindByCode(ctx context.Context, code string) (*entity.Movie, error) {
	args := m.Called(ctx, code)
	movie, _ := args.Get(0).(*entity.Movie)
	return movie, args.Error(1)
}

func (m *mockMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMovieRepo) FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Movie, error) {
	args := m.Called(ctx, limit, offset, search)
	movies, _ := args.Get(0).([]*entity.Movie)
	return movies, args.Error(1)
}

func (m *mockMovieRepo) CountAll(ctx context.Context, search *string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

type mockScreeningRepo struct {
	mock.Mock
}

func (m *mockScreeningRepo) Create(ctx context.Context, screening *entity.Screening) error {
	return m.Called(ctx, screening).Error(0)
}

func (m *mockScreeningRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	args := m.Called(ctx, id)
	screening, _ := args.Get(0).(*entity.Screening)
	return screening, args.Error(1)
}

func (m *mockScreeningRepo) FindByRoomAndDate(ctx context.Context, roomID uuid.UUID, date string) ([]*entity.Screening, error) {
	args := m.Called(ctx, roomID, date)
	screenings, _ := args.Get(0).([]*entity.Screening)
	return screenings, args.Error(1)
}

func (m *mockScreeningRepo) Update(ctx context.Context, screening *entity.Screening) error {
	return m.Called(ctx, screening).Error(0)
}

func (m *mockScreeningRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockScreeningRepo) CountByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockScreeningRepo) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockScreeningRepo) FindDetails(ctx context.Context, filter repository.ScreeningFilter) ([]*entity.ScreeningDetail, error) {
	args := m.Called(ctx, filter)
	details, _ := args.Get(0).([]*entity.ScreeningDetail)
	return details, args.Error(1)
}

func (m *mockScreeningRepo) WithinSlotLock(ctx context.Context, roomID uuid.UUID, date string, fn func(repo repository.ScreeningRepository) error) error {
	args := m.Called(ctx, roomID, date, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}
