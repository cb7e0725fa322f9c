package usecase

import (
	"time"

	"cineacme/internal/scheduling"
)

// Clock answers "what day is it" in the cinema's timezone.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

func NewClock(now func() time.Time, loc *time.Location) Clock {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return Clock{now: now, loc: loc}
}

func (c Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current date as YYYY-MM-DD.
func (c Clock) Today() string {
	return scheduling.Today(c.Now())
}
