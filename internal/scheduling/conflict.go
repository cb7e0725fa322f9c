package scheduling

import (
	"cineacme/internal/data/entity"

	"github.com/google/uuid"
)

// Slot is a candidate window in minutes after midnight.
type Slot struct {
	Start int
	End   int
}

// NewSlot builds a Slot from HH:MM clocks.
func NewSlot(start, end string) (Slot, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Slot{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Start: s, End: e}, nil
}

// Overlaps is the half-open interval test: touching windows do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// FindConflict returns the first screening in existing whose window overlaps
// candidate, skipping excludeID. existing must already be narrowed to one room
// and date. Windows are compared on plain minutes, so a screening whose end
// wrapped past midnight is not treated as running into the next day.
func FindConflict(existing []*entity.Screening, candidate Slot, excludeID uuid.UUID) *entity.Screening {
	for _, s := range existing {
		if excludeID != uuid.Nil && s.ID == excludeID {
			continue
		}

		slot, err := NewSlot(s.StartTime, s.EndTime)
		if err != nil {
			// stored rows are written normalized; skip anything that is not
			continue
		}

		if Overlaps(slot.Start, slot.End, candidate.Start, candidate.End) {
			return s
		}
	}
	return nil
}
