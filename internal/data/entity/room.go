package entity

import "github.com/google/uuid"

// Room is a screening room that belongs to exactly one cinema.
type Room struct {
	Base
	CinemaID uuid.UUID `db:"cinema_id"`
	Code     string    `db:"code"`
	NumSeats int       `db:"num_seats"`
}
