package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ScreeningFilter narrows FindDetails. Zero fields do not filter.
// DateFrom and DateTo are inclusive YYYY-MM-DD bounds.
type ScreeningFilter struct {
	CinemaID *uuid.UUID
	MovieID  *uuid.UUID
	DateFrom string
	DateTo   string
}

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindByRoomAndDate(ctx context.Context, roomID uuid.UUID, date string) ([]*entity.Screening, error)
	Update(ctx context.Context, screening *entity.Screening) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error)
	CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error)
	// FindDetails joins live cinema, room and movie rows, ordered by date then start time.
	FindDetails(ctx context.Context, filter ScreeningFilter) ([]*entity.ScreeningDetail, error)
	// WithinSlotLock runs fn while holding the exclusive lock for one room on
	// one date. Reads and writes made through the repository passed to fn are
	// atomic with respect to other holders of the same slot.
	WithinSlotLock(ctx context.Context, roomID uuid.UUID, date string, fn func(repo ScreeningRepository) error) error
}

type screeningRepository struct {
	db   database.Querier
	pool database.PgxIface // nil inside a transaction
	log  *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:   db,
		pool: db,
		log:  log.With(zap.String("repository", "screening")),
	}
}

const screeningColumns = `s.id, s.cinema_id, s.room_id, s.movie_id, to_char(s.show_date, 'YYYY-MM-DD'),
		       s.start_time, s.duration_minutes, s.end_time, s.created_at, s.updated_at`

func screeningDest(s *entity.Screening) []any {
	return []any{
		&s.ID,
		&s.CinemaID,
		&s.RoomID,
		&s.MovieID,
		&s.ShowDate,
		&s.StartTime,
		&s.DurationMinutes,
		&s.EndTime,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
}

func parseShowDate(date string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid show date %q: %w", date, err)
	}
	return d, nil
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	showDate, err := parseShowDate(screening.ShowDate)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO screenings (id, cinema_id, room_id, movie_id, show_date, start_time,
		                        duration_minutes, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.Exec(ctx, query,
		screening.ID,
		screening.CinemaID,
		screening.RoomID,
		screening.MovieID,
		showDate,
		screening.StartTime,
		screening.DurationMinutes,
		screening.EndTime,
		screening.CreatedAt,
		screening.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create screening in room %s at %s %s: %w",
			screening.RoomID.String(), screening.ShowDate, screening.StartTime, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("room_id", screening.RoomID.String()),
			zap.String("show_date", screening.ShowDate),
			zap.String("start_time", screening.StartTime),
		)
		return fmt.Errorf("create screening in room %s: %w", screening.RoomID.String(), err)
	}

	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings s WHERE s.id = $1`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(screeningDest(&screening)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindByRoomAndDate(ctx context.Context, roomID uuid.UUID, date string) ([]*entity.Screening, error) {
	showDate, err := parseShowDate(date)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + screeningColumns + `
		FROM screenings s
		WHERE s.room_id = $1 AND s.show_date = $2
		ORDER BY s.start_time`

	rows, err := r.db.Query(ctx, query, roomID, showDate)
	if err != nil {
		r.log.Error("Failed to find screenings by room and date",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.String("show_date", date),
		)
		return nil, fmt.Errorf("find screenings for room %s on %s: %w", roomID.String(), date, err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var s entity.Screening
		if err := rows.Scan(screeningDest(&s)...); err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &s)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate screening rows: %w", err)
	}

	return screenings, nil
}

func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening) error {
	showDate, err := parseShowDate(screening.ShowDate)
	if err != nil {
		return err
	}

	query := `
		UPDATE screenings
		SET cinema_id = $2, room_id = $3, movie_id = $4, show_date = $5, start_time = $6,
		    duration_minutes = $7, end_time = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.CinemaID,
		screening.RoomID,
		screening.MovieID,
		showDate,
		screening.StartTime,
		screening.DurationMinutes,
		screening.EndTime,
		screening.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s: %w", screening.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM screenings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepository) CountByRoomID(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM screenings WHERE room_id = $1`, roomID).Scan(&total); err != nil {
		r.log.Error("Failed to count screenings by room", zap.Error(err), zap.String("room_id", roomID.String()))
		return 0, fmt.Errorf("count screenings by room %s: %w", roomID.String(), err)
	}
	return total, nil
}

func (r *screeningRepository) CountByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM screenings WHERE movie_id = $1`, movieID).Scan(&total); err != nil {
		r.log.Error("Failed to count screenings by movie", zap.Error(err), zap.String("movie_id", movieID.String()))
		return 0, fmt.Errorf("count screenings by movie %s: %w", movieID.String(), err)
	}
	return total, nil
}

func (r *screeningRepository) FindDetails(ctx context.Context, filter ScreeningFilter) ([]*entity.ScreeningDetail, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + screeningColumns + `,
		       c.name, r.code, m.title, m.duration_minutes
		FROM screenings s
		JOIN cinemas c ON c.id = s.cinema_id AND c.deleted_at IS NULL
		JOIN rooms r ON r.id = s.room_id AND r.deleted_at IS NULL
		JOIN movies m ON m.id = s.movie_id AND m.deleted_at IS NULL
		WHERE TRUE`)

	args := []interface{}{}
	argCount := 1

	if filter.CinemaID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.cinema_id = $%d", argCount))
		args = append(args, *filter.CinemaID)
		argCount++
	}
	if filter.MovieID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.movie_id = $%d", argCount))
		args = append(args, *filter.MovieID)
		argCount++
	}
	if filter.DateFrom != "" {
		from, err := parseShowDate(filter.DateFrom)
		if err != nil {
			return nil, err
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND s.show_date >= $%d", argCount))
		args = append(args, from)
		argCount++
	}
	if filter.DateTo != "" {
		to, err := parseShowDate(filter.DateTo)
		if err != nil {
			return nil, err
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND s.show_date <= $%d", argCount))
		args = append(args, to)
	}

	queryBuilder.WriteString(" ORDER BY s.show_date, s.start_time, c.name, r.code")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find screening details", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find screening details: %w", err)
	}
	defer rows.Close()

	details := []*entity.ScreeningDetail{}
	for rows.Next() {
		var d entity.ScreeningDetail
		dest := append(screeningDest(&d.Screening), &d.CinemaName, &d.RoomCode, &d.MovieTitle, &d.MovieDuration)
		if err := rows.Scan(dest...); err != nil {
			r.log.Error("Failed to scan screening detail row", zap.Error(err))
			return nil, fmt.Errorf("scan screening detail row: %w", err)
		}
		details = append(details, &d)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate screening detail rows: %w", err)
	}

	return details, nil
}

func (r *screeningRepository) WithinSlotLock(ctx context.Context, roomID uuid.UUID, date string, fn func(repo ScreeningRepository) error) error {
	if r.pool == nil {
		return fn(r)
	}

	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := database.AdvisoryXactLock(ctx, tx, SlotKey(roomID, date)); err != nil {
			r.log.Error("Failed to lock screening slot",
				zap.Error(err),
				zap.String("room_id", roomID.String()),
				zap.String("show_date", date),
			)
			return err
		}
		return fn(&screeningRepository{db: tx, log: r.log})
	})
}

// SlotKey identifies one room on one date.
func SlotKey(roomID uuid.UUID, date string) string {
	return "screening-slot:" + roomID.String() + ":" + date
}
