// Package memstore keeps every record in process memory behind the same
// repository interfaces as the Postgres store. It honours the same soft
// delete, uniqueness and slot-lock rules and is used by tests and by
// STORE_DRIVER=memory.
package memstore

import (
	"sync"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type store struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]entity.User
	cinemas    map[uuid.UUID]entity.Cinema
	rooms      map[uuid.UUID]entity.Room
	movies     map[uuid.UUID]entity.Movie
	screenings map[uuid.UUID]entity.Screening

	slotMu sync.Mutex
	slots  map[string]*sync.Mutex
}

// NewRepository returns a Repository backed by a fresh, empty store.
func NewRepository(log *zap.Logger) *repository.Repository {
	s := &store{
		users:      make(map[uuid.UUID]entity.User),
		cinemas:    make(map[uuid.UUID]entity.Cinema),
		rooms:      make(map[uuid.UUID]entity.Room),
		movies:     make(map[uuid.UUID]entity.Movie),
		screenings: make(map[uuid.UUID]entity.Screening),
		slots:      make(map[string]*sync.Mutex),
	}

	log = log.With(zap.String("store", "memory"))

	return &repository.Repository{
		User:      &userRepo{s: s, log: log.With(zap.String("repository", "user"))},
		Cinema:    &cinemaRepo{s: s, log: log.With(zap.String("repository", "cinema"))},
		Room:      &roomRepo{s: s, log: log.With(zap.String("repository", "room"))},
		Movie:     &movieRepo{s: s, log: log.With(zap.String("repository", "movie"))},
		Screening: &screeningRepo{s: s, log: log.With(zap.String("repository", "screening"))},
	}
}

func (s *store) slotLock(key string) *sync.Mutex {
	s.slotMu.Lock()
	defer s.slotMu.Unlock()

	m, ok := s.slots[key]
	if !ok {
		m = &sync.Mutex{}
		s.slots[key] = m
	}
	return m
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
