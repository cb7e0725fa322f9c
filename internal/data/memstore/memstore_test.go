package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCinema(code string) *entity.Cinema {
	now := time.Now()
	return &entity.Cinema{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Code: code, Name: "Cinema " + code, Address: "Main St", City: "Lima",
	}
}

func TestCinemaRepo_CodeUniquenessAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(zap.NewNop())

	c1 := newCinema("C1")
	require.NoError(t, repo.Cinema.Create(ctx, c1))

	err := repo.Cinema.Create(ctx, newCinema("C1"))
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := repo.Cinema.FindByCode(ctx, "C1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, c1.ID, found.ID)

	require.NoError(t, repo.Cinema.Delete(ctx, c1.ID))

	gone, err := repo.Cinema.FindByID(ctx, c1.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// the code is free again once the holder is soft deleted
	assert.NoError(t, repo.Cinema.Create(ctx, newCinema("C1")))

	assert.ErrorIs(t, repo.Cinema.Delete(ctx, c1.ID), repository.ErrNotFound)
}

func TestCinemaRepo_FindAllPaginatesAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(zap.NewNop())

	for _, code := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Cinema.Create(ctx, newCinema(code)))
	}
	other := newCinema("D")
	other.City = "Cusco"
	require.NoError(t, repo.Cinema.Create(ctx, other))

	all, err := repo.Cinema.FindAll(ctx, 2, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Cusco", all[0].City)

	rest, err := repo.Cinema.FindAll(ctx, 2, 2, nil)
	require.NoError(t, err)
	assert.Len(t, rest, 2)

	city := "lim"
	total, err := repo.Cinema.CountAll(ctx, &city)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestScreeningRepo_SlotUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(zap.NewNop())
	roomID := uuid.New()

	first := &entity.Screening{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		RoomID:       roomID, ShowDate: "2099-01-01", StartTime: "10:00", EndTime: "12:00",
	}
	require.NoError(t, repo.Screening.Create(ctx, first))

	dup := *first
	dup.ID = uuid.New()
	assert.ErrorIs(t, repo.Screening.Create(ctx, &dup), repository.ErrDuplicate)

	// updating a screening onto its own slot is not a duplicate
	assert.NoError(t, repo.Screening.Update(ctx, first))

	list, err := repo.Screening.FindByRoomAndDate(ctx, roomID, "2099-01-01")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Screening.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Screening.Delete(ctx, first.ID), repository.ErrNotFound)
}

func TestScreeningRepo_FindDetailsSkipsDeletedReferences(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(zap.NewNop())

	cinema := newCinema("C1")
	require.NoError(t, repo.Cinema.Create(ctx, cinema))
	room := &entity.Room{Base: entity.Base{ID: uuid.New()}, CinemaID: cinema.ID, Code: "R1", NumSeats: 80}
	require.NoError(t, repo.Room.Create(ctx, room))
	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}, Code: "M1", Title: "Heat", DurationMinutes: 120}
	require.NoError(t, repo.Movie.Create(ctx, movie))

	for _, d := range []string{"2099-01-02", "2099-01-01", "2099-01-03"} {
		require.NoError(t, repo.Screening.Create(ctx, &entity.Screening{
			BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
			CinemaID:     cinema.ID, RoomID: room.ID, MovieID: movie.ID,
			ShowDate: d, StartTime: "10:00", DurationMinutes: 120, EndTime: "12:00",
		}))
	}

	details, err := repo.Screening.FindDetails(ctx, repository.ScreeningFilter{DateFrom: "2099-01-02"})
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "2099-01-02", details[0].ShowDate)
	assert.Equal(t, "Heat", details[0].MovieTitle)
	assert.Equal(t, "R1", details[0].RoomCode)

	require.NoError(t, repo.Movie.Delete(ctx, movie.ID))

	details, err = repo.Screening.FindDetails(ctx, repository.ScreeningFilter{})
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.NotNil(t, details)
}

func TestScreeningRepo_WithinSlotLockSerializes(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(zap.NewNop())
	roomID := uuid.New()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Screening.WithinSlotLock(ctx, roomID, "2099-01-01", func(repository.ScreeningRepository) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}
