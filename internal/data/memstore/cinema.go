package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type cinemaRepo struct {
	s   *store
	log *zap.Logger
}

func (r *cinemaRepo) codeTaken(code string, except uuid.UUID) bool {
	for id, c := range r.s.cinemas {
		if id != except && c.DeletedAt == nil && c.Code == code {
			return true
		}
	}
	return false
}

func (r *cinemaRepo) Create(_ context.Context, cinema *entity.Cinema) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.codeTaken(cinema.Code, uuid.Nil) {
		return fmt.Errorf("create cinema %s: %w", cinema.Code, repository.ErrDuplicate)
	}
	r.s.cinemas[cinema.ID] = *cinema
	return nil
}

func (r *cinemaRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Cinema, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.cinemas[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return &c, nil
}

func (r *cinemaRepo) FindByCode(_ context.Context, code string) (*entity.Cinema, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.cinemas {
		if c.DeletedAt == nil && c.Code == code {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *cinemaRepo) filtered(cityFilter *string) []*entity.Cinema {
	var out []*entity.Cinema
	for _, c := range r.s.cinemas {
		if c.DeletedAt != nil {
			continue
		}
		if cityFilter != nil && *cityFilter != "" &&
			!strings.Contains(strings.ToLower(c.City), strings.ToLower(*cityFilter)) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *cinemaRepo) FindAll(_ context.Context, limit, offset int, cityFilter *string) ([]*entity.Cinema, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return page(r.filtered(cityFilter), limit, offset), nil
}

func (r *cinemaRepo) CountAll(_ context.Context, cityFilter *string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.filtered(cityFilter))), nil
}

func (r *cinemaRepo) Update(_ context.Context, cinema *entity.Cinema) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.cinemas[cinema.ID]
	if !ok || cur.DeletedAt != nil {
		return fmt.Errorf("cinema %s: %w", cinema.ID, repository.ErrNotFound)
	}
	if r.codeTaken(cinema.Code, cinema.ID) {
		return fmt.Errorf("update cinema %s: %w", cinema.ID, repository.ErrDuplicate)
	}
	r.s.cinemas[cinema.ID] = *cinema
	return nil
}

func (r *cinemaRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.cinemas[id]
	if !ok || c.DeletedAt != nil {
		return fmt.Errorf("cinema %s: %w", id, repository.ErrNotFound)
	}
	now := time.Now()
	c.DeletedAt = &now
	r.s.cinemas[id] = c

	r.log.Info("Cinema deleted", zap.String("cinema_id", id.String()))
	return nil
}
