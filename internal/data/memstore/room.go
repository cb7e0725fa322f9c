package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type roomRepo struct {
	s   *store
	log *zap.Logger
}

func (r *roomRepo) codeTaken(code string, except uuid.UUID) bool {
	for id, room := range r.s.rooms {
		if id != except && room.DeletedAt == nil && room.Code == code {
			return true
		}
	}
	return false
}

func (r *roomRepo) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.codeTaken(room.Code, uuid.Nil) {
		return fmt.Errorf("create room %s: %w", room.Code, repository.ErrDuplicate)
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *roomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok || room.DeletedAt != nil {
		return nil, nil
	}
	return &room, nil
}

func (r *roomRepo) FindByCode(_ context.Context, code string) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, room := range r.s.rooms {
		if room.DeletedAt == nil && room.Code == code {
			return &room, nil
		}
	}
	return nil, nil
}

func (r *roomRepo) filtered(cinemaFilter *uuid.UUID) []*entity.Room {
	var out []*entity.Room
	for _, room := range r.s.rooms {
		if room.DeletedAt != nil {
			continue
		}
		if cinemaFilter != nil && room.CinemaID != *cinemaFilter {
			continue
		}
		room := room
		out = append(out, &room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (r *roomRepo) FindByCinemaID(_ context.Context, cinemaID uuid.UUID) ([]*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.filtered(&cinemaID), nil
}

func (r *roomRepo) CountByCinemaID(_ context.Context, cinemaID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.filtered(&cinemaID))), nil
}

func (r *roomRepo) FindAll(_ context.Context, limit, offset int, cinemaFilter *uuid.UUID) ([]*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return page(r.filtered(cinemaFilter), limit, offset), nil
}

func (r *roomRepo) CountAll(_ context.Context, cinemaFilter *uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.filtered(cinemaFilter))), nil
}

func (r *roomRepo) Update(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.rooms[room.ID]
	if !ok || cur.DeletedAt != nil {
		return fmt.Errorf("room %s: %w", room.ID, repository.ErrNotFound)
	}
	if r.codeTaken(room.Code, room.ID) {
		return fmt.Errorf("update room %s: %w", room.ID, repository.ErrDuplicate)
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *roomRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok || room.DeletedAt != nil {
		return fmt.Errorf("room %s: %w", id, repository.ErrNotFound)
	}
	now := time.Now()
	room.DeletedAt = &now
	r.s.rooms[id] = room

	r.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}
