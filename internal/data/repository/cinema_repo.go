package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cineacme/internal/data/entity"
	"cineacme/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CinemaRepository interface {
	Create(ctx context.Context, cinema *entity.Cinema) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error)
	FindByCode(ctx context.Context, code string) (*entity.Cinema, error)
	FindAll(ctx context.Context, limit, offset int, cityFilter *string) ([]*entity.Cinema, error)
	CountAll(ctx context.Context, cityFilter *string) (int64, error)
	Update(ctx context.Context, cinema *entity.Cinema) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type cinemaRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCinemaRepository(db database.Querier, log *zap.Logger) CinemaRepository {
	return &cinemaRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema")),
	}
}

const cinemaColumns = `id, code, name, address, city, created_at, updated_at, deleted_at`

func scanCinema(row pgx.Row) (*entity.Cinema, error) {
	var cinema entity.Cinema
	err := row.Scan(
		&cinema.ID,
		&cinema.Code,
		&cinema.Name,
		&cinema.Address,
		&cinema.City,
		&cinema.CreatedAt,
		&cinema.UpdatedAt,
		&cinema.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cinema, nil
}

func (r *cinemaRepository) Create(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		INSERT INTO cinemas (id, code, name, address, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		cinema.ID,
		cinema.Code,
		cinema.Name,
		cinema.Address,
		cinema.City,
		cinema.CreatedAt,
		cinema.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create cinema %s: %w", cinema.Code, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create cinema",
			zap.Error(err),
			zap.String("code", cinema.Code),
		)
		return fmt.Errorf("create cinema %s: %w", cinema.Code, err)
	}

	return nil
}

func (r *cinemaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error) {
	query := `SELECT ` + cinemaColumns + ` FROM cinemas WHERE id = $1 AND deleted_at IS NULL`

	cinema, err := scanCinema(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema by ID",
			zap.Error(err),
			zap.String("cinema_id", id.String()),
		)
		return nil, fmt.Errorf("find cinema by ID %s: %w", id.String(), err)
	}

	return cinema, nil
}

func (r *cinemaRepository) FindByCode(ctx context.Context, code string) (*entity.Cinema, error) {
	query := `SELECT ` + cinemaColumns + ` FROM cinemas WHERE code = $1 AND deleted_at IS NULL`

	cinema, err := scanCinema(r.db.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema by code", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find cinema by code %s: %w", code, err)
	}

	return cinema, nil
}

func (r *cinemaRepository) FindAll(ctx context.Context, limit, offset int, cityFilter *string) ([]*entity.Cinema, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + cinemaColumns + ` FROM cinemas WHERE deleted_at IS NULL`)

	args := []interface{}{}
	argCount := 1

	if cityFilter != nil && *cityFilter != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND city ILIKE $%d", argCount))
		args = append(args, "%"+*cityFilter+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY city, name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all cinemas",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("city_filter", cityFilter),
		)
		return nil, fmt.Errorf("find all cinemas limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var cinemas []*entity.Cinema
	for rows.Next() {
		cinema, err := scanCinema(rows)
		if err != nil {
			r.log.Error("Failed to scan cinema row", zap.Error(err))
			return nil, fmt.Errorf("scan cinema row: %w", err)
		}
		cinemas = append(cinemas, cinema)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate cinema rows: %w", err)
	}

	return cinemas, nil
}

func (r *cinemaRepository) CountAll(ctx context.Context, cityFilter *string) (int64, error) {
	query := `SELECT COUNT(*) FROM cinemas WHERE deleted_at IS NULL`
	args := []interface{}{}

	if cityFilter != nil && *cityFilter != "" {
		query += " AND city ILIKE $1"
		args = append(args, "%"+*cityFilter+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count cinemas",
			zap.Error(err),
			zap.Stringp("city_filter", cityFilter),
		)
		return 0, fmt.Errorf("count all cinemas: %w", err)
	}

	return total, nil
}

func (r *cinemaRepository) Update(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		UPDATE cinemas
		SET code = $2, name = $3, address = $4, city = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		cinema.ID,
		cinema.Code,
		cinema.Name,
		cinema.Address,
		cinema.City,
		cinema.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("update cinema %s: %w", cinema.ID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update cinema",
			zap.Error(err),
			zap.String("cinema_id", cinema.ID.String()),
		)
		return fmt.Errorf("update cinema %s: %w", cinema.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cinema %s: %w", cinema.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *cinemaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE cinemas SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete cinema",
			zap.Error(err),
			zap.String("cinema_id", id.String()),
		)
		return fmt.Errorf("delete cinema %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cinema %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Cinema deleted", zap.String("cinema_id", id.String()))
	return nil
}
