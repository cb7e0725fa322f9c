package repository

import (
	"cineacme/internal/data/entity"
	"cineacme/pkg/database"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindByCode(ctx context.Context, code string) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	// search matches title, genre or director, case-insensitively
	FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Movie, error)
	CountAll(ctx context.Context, search *string) (int64, error)
}

type movieRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieRepository(db database.Querier, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, code, title, synopsis, cast_members, classification, language, director,
		       duration_minutes, genre, release_date, trailer_url, poster_url,
		       created_at, updated_at, deleted_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Code,
		&movie.Title,
		&movie.Synopsis,
		&movie.Cast,
		&movie.Classification,
		&movie.Language,
		&movie.Director,
		&movie.DurationMinutes,
		&movie.Genre,
		&movie.ReleaseDate,
		&movie.TrailerURL,
		&movie.PosterURL,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, code, title, synopsis, cast_members, classification, language,
		                   director, duration_minutes, genre, release_date, trailer_url, poster_url,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Code,
		movie.Title,
		movie.Synopsis,
		movie.Cast,
		movie.Classification,
		movie.Language,
		movie.Director,
		movie.DurationMinutes,
		movie.Genre,
		movie.ReleaseDate,
		movie.TrailerURL,
		movie.PosterURL,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create movie %s: %w", movie.Code, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("code", movie.Code),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Code, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1 AND deleted_at IS NULL`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindByCode(ctx context.Context, code string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE code = $1 AND deleted_at IS NULL`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by code", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find movie by code %s: %w", code, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int, search *string) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM movies WHERE deleted_at IS NULL`)

	args := []interface{}{}
	argCount := 1

	if search != nil && *search != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (title ILIKE $%d OR genre ILIKE $%d OR director ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+*search+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY release_date DESC, title LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
			zap.Stringp("search", search),
		)
		return nil, fmt.Errorf("find all movies limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE deleted_at IS NULL`
	args := []interface{}{}

	if search != nil && *search != "" {
		query += " AND (title ILIKE $1 OR genre ILIKE $1 OR director ILIKE $1)"
		args = append(args, "%"+*search+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err), zap.Stringp("search", search))
		return 0, fmt.Errorf("count all movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET code = $2, title = $3, synopsis = $4, cast_members = $5, classification = $6,
		    language = $7, director = $8, duration_minutes = $9, genre = $10,
		    release_date = $11, trailer_url = $12, poster_url = $13, updated_at = $14
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Code,
		movie.Title,
		movie.Synopsis,
		movie.Cast,
		movie.Classification,
		movie.Language,
		movie.Director,
		movie.DurationMinutes,
		movie.Genre,
		movie.ReleaseDate,
		movie.TrailerURL,
		movie.PosterURL,
		movie.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", movie.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE movies SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
