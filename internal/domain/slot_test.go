package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotType(t *testing.T) {
	for _, known := range AllSlotTypes {
		parsed, err := ParseSlotType(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, parsed)
	}

	_, err := ParseSlotType("SIDEBAR")
	assert.ErrorIs(t, err, ErrInvalidSlotKind)

	_, err = ParseSlotType("")
	assert.ErrorIs(t, err, ErrInvalidSlotKind)
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 10, Capacity(SlotMainRolling))
	assert.Equal(t, 3, Capacity(SlotMainSide))
	assert.Equal(t, 5, Capacity(SlotCategoryTop))
	assert.Equal(t, 5, Capacity(SlotOrderComplete))
	assert.Equal(t, 0, Capacity(SlotType("SIDEBAR")))
}

func TestSlotIDValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    SlotID
		wantErr bool
	}{
		{"rolling first position", SlotID{Type: SlotMainRolling, Position: 1}, false},
		{"rolling last position", SlotID{Type: SlotMainRolling, Position: 10}, false},
		{"rolling out of range", SlotID{Type: SlotMainRolling, Position: 11}, true},
		{"position zero", SlotID{Type: SlotMainSide, Position: 0}, true},
		{"negative position", SlotID{Type: SlotOrderComplete, Position: -1}, true},
		{"unknown type", SlotID{Type: SlotType("SIDEBAR"), Position: 1}, true},
		{"category top with category", SlotID{Type: SlotCategoryTop, Position: 3, Category: "beauty"}, false},
		{"category top without category", SlotID{Type: SlotCategoryTop, Position: 3}, true},
		{"rolling with category", SlotID{Type: SlotMainRolling, Position: 2, Category: "beauty"}, true},
		{"order complete without category", SlotID{Type: SlotOrderComplete, Position: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSlotKind)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUsesBanner(t *testing.T) {
	assert.True(t, UsesBanner(SlotMainRolling))
	assert.True(t, UsesBanner(SlotMainSide))
	assert.False(t, UsesBanner(SlotCategoryTop))
	assert.False(t, UsesBanner(SlotOrderComplete))
}

func day(s string) time.Time {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBookingOverlaps(t *testing.T) {
	b := &Booking{StartDate: day("2025-09-01"), EndDate: day("2025-09-07")}

	// границы включительно с обеих сторон
	assert.True(t, b.Overlaps(day("2025-09-07"), day("2025-09-10")))
	assert.True(t, b.Overlaps(day("2025-08-25"), day("2025-09-01")))
	assert.True(t, b.Overlaps(day("2025-09-03"), day("2025-09-04")))
	assert.True(t, b.Overlaps(day("2025-08-01"), day("2025-10-01")))

	assert.False(t, b.Overlaps(day("2025-09-08"), day("2025-09-14")))
	assert.False(t, b.Overlaps(day("2025-08-20"), day("2025-08-31")))
}

func TestBookingCoversDay(t *testing.T) {
	b := &Booking{StartDate: day("2025-09-01"), EndDate: day("2025-09-07")}

	assert.True(t, b.CoversDay(day("2025-09-01")))
	assert.True(t, b.CoversDay(day("2025-09-07")))
	assert.True(t, b.CoversDay(day("2025-09-04")))
	assert.False(t, b.CoversDay(day("2025-08-31")))
	assert.False(t, b.CoversDay(day("2025-09-08")))
}

func TestBookingDurationDays(t *testing.T) {
	b := &Booking{StartDate: day("2025-09-01"), EndDate: day("2025-09-07")}
	assert.Equal(t, 7, b.DurationDays())

	single := &Booking{StartDate: day("2025-09-01"), EndDate: day("2025-09-01")}
	assert.Equal(t, 1, single.DurationDays())
}

func TestBookingDaysUntilStart(t *testing.T) {
	b := &Booking{StartDate: day("2025-09-10"), EndDate: day("2025-09-14")}

	assert.Equal(t, 9, b.DaysUntilStart(day("2025-09-01")))
	assert.Equal(t, 0, b.DaysUntilStart(day("2025-09-10")))
	assert.Equal(t, -2, b.DaysUntilStart(day("2025-09-12")))
}

func TestBookingLifecyclePredicates(t *testing.T) {
	unpaid := &Booking{Status: StatusReservedUnpaid}
	paid := &Booking{Status: StatusReservedPaid}
	active := &Booking{Status: StatusActive}
	completed := &Booking{Status: StatusCompleted}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, unpaid.Editable())
	assert.False(t, paid.Editable())
	assert.False(t, active.Editable())

	assert.True(t, unpaid.CanBeCancelledBySeller())
	assert.True(t, paid.CanBeCancelledBySeller())
	assert.False(t, active.CanBeCancelledBySeller())
	assert.False(t, completed.CanBeCancelledBySeller())

	assert.True(t, unpaid.IsBlocking())
	assert.True(t, paid.IsBlocking())
	assert.True(t, active.IsBlocking())
	assert.False(t, completed.IsBlocking())
	assert.False(t, cancelled.IsBlocking())
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 9, 3, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}
