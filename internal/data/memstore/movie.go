package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type movieRepo struct {
	s   *store
	log *zap.Logger
}

func cloneMovie(m entity.Movie) *entity.Movie {
	m.Cast = slices.Clone(m.Cast)
	return &m
}

func (r *movieRepo) codeTaken(code string, except uuid.UUID) bool {
	for id, m := range r.s.movies {
		if id != except && m.DeletedAt == nil && m.Code == code {
			return true
		}
	}
	return false
}

func (r *movieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.codeTaken(movie.Code, uuid.Nil) {
		return fmt.Errorf("create movie %s: %w", movie.Code, repository.ErrDuplicate)
	}
	r.s.movies[movie.ID] = *cloneMovie(*movie)
	return nil
}

func (r *movieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.movies[id]
	if !ok || m.DeletedAt != nil {
		return nil, nil
	}
	return cloneMovie(m), nil
}

func (r *movieRepo) FindByCode(_ context.Context, code string) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.movies {
		if m.DeletedAt == nil && m.Code == code {
			return cloneMovie(m), nil
		}
	}
	return nil, nil
}

func matchesSearch(m entity.Movie, search *string) bool {
	if search == nil || *search == "" {
		return true
	}
	q := strings.ToLower(*search)
	for _, field := range []string{m.Title, m.Genre, m.Director} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *movieRepo) filtered(search *string) []*entity.Movie {
	var out []*entity.Movie
	for _, m := range r.s.movies {
		if m.DeletedAt == nil && matchesSearch(m, search) {
			out = append(out, cloneMovie(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReleaseDate.Equal(out[j].ReleaseDate) {
			return out[i].ReleaseDate.After(out[j].ReleaseDate)
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func (r *movieRepo) FindAll(_ context.Context, limit, offset int, search *string) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return page(r.filtered(search), limit, offset), nil
}

func (r *movieRepo) CountAll(_ context.Context, search *string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.filtered(search))), nil
}

func (r *movieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.movies[movie.ID]
	if !ok || cur.DeletedAt != nil {
		return fmt.Errorf("movie %s: %w", movie.ID, repository.ErrNotFound)
	}
	if r.codeTaken(movie.Code, movie.ID) {
		return fmt.Errorf("update movie %s: %w", movie.ID, repository.ErrDuplicate)
	}
	r.s.movies[movie.ID] = *cloneMovie(*movie)
	return nil
}

func (r *movieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.movies[id]
	if !ok || m.DeletedAt != nil {
		return fmt.Errorf("movie %s: %w", id, repository.ErrNotFound)
	}
	now := time.Now()
	m.DeletedAt = &now
	r.s.movies[id] = m

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
