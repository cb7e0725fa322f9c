package memstore

import (
	"context"
	"fmt"
	"sort"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type screeningRepo struct {
	s   *store
	log *zap.Logger
}

// slotTaken mirrors the unique (room_id, show_date, start_time) index.
func (r *screeningRepo) slotTaken(sc *entity.Screening) bool {
	for id, other := range r.s.screenings {
		if id != sc.ID && other.RoomID == sc.RoomID && other.ShowDate == sc.ShowDate && other.StartTime == sc.StartTime {
			return true
		}
	}
	return false
}

func (r *screeningRepo) Create(_ context.Context, screening *entity.Screening) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slotTaken(screening) {
		return fmt.Errorf("create screening in room %s at %s %s: %w",
			screening.RoomID, screening.ShowDate, screening.StartTime, repository.ErrDuplicate)
	}
	r.s.screenings[screening.ID] = *screening
	return nil
}

func (r *screeningRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Screening, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sc, ok := r.s.screenings[id]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

func (r *screeningRepo) FindByRoomAndDate(_ context.Context, roomID uuid.UUID, date string) ([]*entity.Screening, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.Screening
	for _, sc := range r.s.screenings {
		if sc.RoomID == roomID && sc.ShowDate == date {
			sc := sc
			out = append(out, &sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *screeningRepo) Update(_ context.Context, screening *entity.Screening) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.screenings[screening.ID]; !ok {
		return fmt.Errorf("screening %s: %w", screening.ID, repository.ErrNotFound)
	}
	if r.slotTaken(screening) {
		return fmt.Errorf("update screening %s: %w", screening.ID, repository.ErrDuplicate)
	}
	r.s.screenings[screening.ID] = *screening
	return nil
}

func (r *screeningRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.screenings[id]; !ok {
		return fmt.Errorf("screening %s: %w", id, repository.ErrNotFound)
	}
	delete(r.s.screenings, id)

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepo) CountByRoomID(_ context.Context, roomID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, sc := range r.s.screenings {
		if sc.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (r *screeningRepo) CountByMovieID(_ context.Context, movieID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, sc := range r.s.screenings {
		if sc.MovieID == movieID {
			n++
		}
	}
	return n, nil
}

func (r *screeningRepo) FindDetails(_ context.Context, filter repository.ScreeningFilter) ([]*entity.ScreeningDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	details := []*entity.ScreeningDetail{}
	for _, sc := range r.s.screenings {
		if filter.CinemaID != nil && sc.CinemaID != *filter.CinemaID {
			continue
		}
		if filter.MovieID != nil && sc.MovieID != *filter.MovieID {
			continue
		}
		// ISO dates order lexically
		if filter.DateFrom != "" && sc.ShowDate < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && sc.ShowDate > filter.DateTo {
			continue
		}

		cinema, ok := r.s.cinemas[sc.CinemaID]
		if !ok || cinema.DeletedAt != nil {
			continue
		}
		room, ok := r.s.rooms[sc.RoomID]
		if !ok || room.DeletedAt != nil {
			continue
		}
		movie, ok := r.s.movies[sc.MovieID]
		if !ok || movie.DeletedAt != nil {
			continue
		}

		details = append(details, &entity.ScreeningDetail{
			Screening:     sc,
			CinemaName:    cinema.Name,
			RoomCode:      room.Code,
			MovieTitle:    movie.Title,
			MovieDuration: movie.DurationMinutes,
		})
	}

	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if a.ShowDate != b.ShowDate {
			return a.ShowDate < b.ShowDate
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if a.CinemaName != b.CinemaName {
			return a.CinemaName < b.CinemaName
		}
		return a.RoomCode < b.RoomCode
	})

	return details, nil
}

func (r *screeningRepo) WithinSlotLock(_ context.Context, roomID uuid.UUID, date string, fn func(repo repository.ScreeningRepository) error) error {
	m := r.s.slotLock(repository.SlotKey(roomID, date))
	m.Lock()
	defer m.Unlock()

	return fn(r)
}
