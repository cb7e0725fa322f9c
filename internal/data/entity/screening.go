package entity

import (
	"github.com/google/uuid"
)

// Screening is one scheduled showing of a movie in a room.
//
// ShowDate is a wall-clock calendar date (YYYY-MM-DD) and StartTime/EndTime are
// zero-padded HH:MM clocks. DurationMinutes is copied from the movie on every
// write and EndTime is always derived from StartTime and DurationMinutes.
type Screening struct {
	BaseNoDelete
	CinemaID        uuid.UUID `db:"cinema_id"`
	RoomID          uuid.UUID `db:"room_id"`
	MovieID         uuid.UUID `db:"movie_id"`
	ShowDate        string    `db:"show_date"`
	StartTime       string    `db:"start_time"`
	DurationMinutes int       `db:"duration_minutes"`
	EndTime         string    `db:"end_time"`
}

// ScreeningDetail is a screening joined with the display fields of the
// cinema, room and movie it references.
type ScreeningDetail struct {
	Screening
	CinemaName    string `db:"cinema_name"`
	RoomCode      string `db:"room_code"`
	MovieTitle    string `db:"movie_title"`
	MovieDuration int    `db:"movie_duration"`
}
