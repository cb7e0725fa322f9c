package repository

import (
	"context"
	"errors"
	"fmt"

	"cineacme/internal/data/entity"
	"cineacme/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByCode(ctx context.Context, code string) (*entity.Room, error)
	FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.Room, error)
	CountByCinemaID(ctx context.Context, cinemaID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int, cinemaFilter *uuid.UUID) ([]*entity.Room, error)
	CountAll(ctx context.Context, cinemaFilter *uuid.UUID) (int64, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRoomRepository(db database.Querier, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, cinema_id, code, num_seats, created_at, updated_at, deleted_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.CinemaID,
		&room.Code,
		&room.NumSeats,
		&room.CreatedAt,
		&room.UpdatedAt,
		&room.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, cinema_id, code, num_seats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.CinemaID,
		room.Code,
		room.NumSeats,
		room.CreatedAt,
		room.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create room %s: %w", room.Code, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("cinema_id", room.CinemaID.String()),
			zap.String("code", room.Code),
		)
		return fmt.Errorf("create room %s in cinema %s: %w", room.Code, room.CinemaID.String(), err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 AND deleted_at IS NULL`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID", zap.Error(err), zap.String("room_id", id.String()))
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return room, nil
}

func (r *roomRepository) FindByCode(ctx context.Context, code string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE code = $1 AND deleted_at IS NULL`

	room, err := scanRoom(r.db.QueryRow(ctx, query, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by code", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find room by code %s: %w", code, err)
	}

	return room, nil
}

func (r *roomRepository) FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE cinema_id = $1 AND deleted_at IS NULL ORDER BY code`

	rows, err := r.db.Query(ctx, query, cinemaID)
	if err != nil {
		r.log.Error("Failed to find rooms by cinema", zap.Error(err), zap.String("cinema_id", cinemaID.String()))
		return nil, fmt.Errorf("find rooms by cinema %s: %w", cinemaID.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *roomRepository) CountByCinemaID(ctx context.Context, cinemaID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM rooms WHERE cinema_id = $1 AND deleted_at IS NULL`

	var total int64
	if err := r.db.QueryRow(ctx, query, cinemaID).Scan(&total); err != nil {
		r.log.Error("Failed to count rooms by cinema", zap.Error(err), zap.String("cinema_id", cinemaID.String()))
		return 0, fmt.Errorf("count rooms by cinema %s: %w", cinemaID.String(), err)
	}

	return total, nil
}

func (r *roomRepository) FindAll(ctx context.Context, limit, offset int, cinemaFilter *uuid.UUID) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE deleted_at IS NULL`
	args := []interface{}{}

	if cinemaFilter != nil {
		query += " AND cinema_id = $1 ORDER BY code LIMIT $2 OFFSET $3"
		args = append(args, *cinemaFilter, limit, offset)
	} else {
		query += " ORDER BY code LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all rooms",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all rooms limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *roomRepository) CountAll(ctx context.Context, cinemaFilter *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM rooms WHERE deleted_at IS NULL`
	args := []interface{}{}

	if cinemaFilter != nil {
		query += " AND cinema_id = $1"
		args = append(args, *cinemaFilter)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count all rooms: %w", err)
	}

	return total, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET cinema_id = $2, code = $3, num_seats = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		room.ID,
		room.CinemaID,
		room.Code,
		room.NumSeats,
		room.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("update room %s: %w", room.ID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update room", zap.Error(err), zap.String("room_id", room.ID.String()))
		return fmt.Errorf("update room %s: %w", room.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s: %w", room.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE rooms SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete room", zap.Error(err), zap.String("room_id", id.String()))
		return fmt.Errorf("delete room %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}

func (r *roomRepository) collect(rows pgx.Rows) ([]*entity.Room, error) {
	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}
