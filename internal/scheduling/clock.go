// Package scheduling holds the pure time-window arithmetic and overlap
// detection used when screenings are placed in a room.
package scheduling

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

// H:MM or HH:MM, 24-hour.
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock returns the number of minutes after midnight for a 24-hour
// H:MM or HH:MM clock.
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid clock %q: expected HH:MM", s)
	}

	hh, mm, _ := strings.Cut(s, ":")
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)

	return hours*60 + minutes, nil
}

// FormatClock renders minutes after midnight as HH:MM, wrapping past 24:00.
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock zero-pads a valid clock, so "9:05" becomes "09:05".
func NormalizeClock(s string) (string, error) {
	m, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(m), nil
}

// EndTime adds durationMinutes to start and returns the resulting time of day.
// A window that crosses midnight wraps ("23:30" + 90 = "01:00"); the caller
// keeps the original date.
func EndTime(start string, durationMinutes int) (string, error) {
	m, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	return FormatClock(m + durationMinutes), nil
}

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Today returns now's calendar date in YYYY-MM-DD form.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
