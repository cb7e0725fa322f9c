package scheduling

import (
	"testing"

	"cineacme/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screening(start, end string) *entity.Screening {
	return &entity.Screening{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		ShowDate:     "2024-06-01",
		StartTime:    start,
		EndTime:      end,
	}
}

func slot(t *testing.T, start, end string) Slot {
	t.Helper()
	s, err := NewSlot(start, end)
	require.NoError(t, err)
	return s
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(840, 960, 900, 1020))
	assert.True(t, Overlaps(840, 960, 840, 960))
	assert.True(t, Overlaps(840, 960, 870, 900))
	assert.False(t, Overlaps(840, 960, 960, 1080))
	assert.False(t, Overlaps(840, 960, 600, 840))
}

func TestFindConflict(t *testing.T) {
	existing := []*entity.Screening{screening("14:00", "16:00")}

	tests := []struct {
		name      string
		candidate Slot
		conflict  bool
	}{
		{name: "identical window", candidate: slot(t, "14:00", "16:00"), conflict: true},
		{name: "partial overlap", candidate: slot(t, "15:00", "17:00"), conflict: true},
		{name: "contained", candidate: slot(t, "14:30", "15:00"), conflict: true},
		{name: "back to back after", candidate: slot(t, "16:00", "18:00"), conflict: false},
		{name: "back to back before", candidate: slot(t, "10:00", "14:00"), conflict: false},
		{name: "far apart", candidate: slot(t, "19:00", "21:00"), conflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflict(existing, tt.candidate, uuid.Nil)
			if tt.conflict {
				require.NotNil(t, got)
				assert.Equal(t, existing[0].ID, got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestFindConflict_EmptySchedule(t *testing.T) {
	assert.Nil(t, FindConflict(nil, slot(t, "10:00", "12:00"), uuid.Nil))
}

func TestFindConflict_ExcludesSelf(t *testing.T) {
	own := screening("10:00", "12:00")
	other := screening("12:00", "14:00")
	existing := []*entity.Screening{own, other}

	// moving own 30 minutes earlier only overlaps its old position
	assert.Nil(t, FindConflict(existing, slot(t, "09:30", "11:30"), own.ID))

	got := FindConflict(existing, slot(t, "11:00", "13:00"), own.ID)
	require.NotNil(t, got)
	assert.Equal(t, other.ID, got.ID)
}

// A screening that runs past midnight keeps its start date and its wrapped end
// time is compared as a plain clock, so late-night overlaps go undetected.
func TestFindConflict_MidnightWrapIsNotDetected(t *testing.T) {
	late := screening("23:30", "01:00")
	existing := []*entity.Screening{late}

	assert.Nil(t, FindConflict(existing, slot(t, "23:45", "00:45"), uuid.Nil))
	assert.Nil(t, FindConflict(existing, slot(t, "00:15", "02:00"), uuid.Nil))
}
