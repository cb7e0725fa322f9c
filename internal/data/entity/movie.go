package entity

import (
	"time"
)

type Movie struct {
	Base
	Code            string    `db:"code"`
	Title           string    `db:"title"`
	Synopsis        string    `db:"synopsis"`
	Cast            []string  `db:"cast_members"`
	Classification  string    `db:"classification"`
	Language        string    `db:"language"`
	Director        string    `db:"director"`
	DurationMinutes int       `db:"duration_minutes"`
	Genre           string    `db:"genre"`
	ReleaseDate     time.Time `db:"release_date"`
	TrailerURL      *string   `db:"trailer_url"`
	PosterURL       *string   `db:"poster_url"`
}
