package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meonjeo/ad-booking-service/internal/domain"
)

type fakeRepo struct {
	bookings []*domain.Booking
}

func (r *fakeRepo) FindBlockingForRange(_ context.Context, slotType domain.SlotType, category string, from, to time.Time) ([]*domain.Booking, error) {
	var found []*domain.Booking
	for _, b := range r.bookings {
		if b.Slot.Type != slotType || b.Slot.Category != category {
			continue
		}
		if b.IsBlocking() && b.Overlaps(from, to) {
			found = append(found, b)
		}
	}
	return found, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGetAvailability_MarksBookedDays(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		{
			Slot:      domain.SlotID{Type: domain.SlotMainSide, Position: 2},
			StartDate: day("2025-09-03"),
			EndDate:   day("2025-09-05"),
			Status:    domain.StatusReservedPaid,
		},
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SlotType: domain.SlotMainSide,
		From:     day("2025-09-01"),
		To:       day("2025-09-07"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Positions, domain.Capacity(domain.SlotMainSide))

	byPosition := make(map[int]PositionAvailability)
	for _, pos := range resp.Positions {
		byPosition[pos.Position] = pos
	}

	pos2 := byPosition[2]
	require.Len(t, pos2.Days, 7)
	for _, d := range pos2.Days {
		booked := !d.Date.Before(day("2025-09-03")) && !d.Date.After(day("2025-09-05"))
		assert.Equal(t, !booked, d.Available, "position 2 on %s", d.Date.Format(domain.DateFormat))
	}

	// остальные позиции полностью свободны
	for _, pos := range []int{1, 3} {
		for _, d := range byPosition[pos].Days {
			assert.True(t, d.Available)
		}
	}

	// хотя бы одна позиция свободна каждый день
	assert.Empty(t, resp.DisabledDates)
}

func TestGetAvailability_DisabledDates(t *testing.T) {
	repo := &fakeRepo{}
	// все три позиции MAIN_SIDE заняты 2025-09-04
	for pos := 1; pos <= 3; pos++ {
		repo.bookings = append(repo.bookings, &domain.Booking{
			Slot:      domain.SlotID{Type: domain.SlotMainSide, Position: pos},
			StartDate: day("2025-09-04"),
			EndDate:   day("2025-09-04"),
			Status:    domain.StatusActive,
		})
	}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SlotType: domain.SlotMainSide,
		From:     day("2025-09-03"),
		To:       day("2025-09-05"),
	})
	require.NoError(t, err)

	require.Len(t, resp.DisabledDates, 1)
	assert.Equal(t, day("2025-09-04"), resp.DisabledDates[0])
}

func TestGetAvailability_CancelledDoesNotBlock(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		{
			Slot:      domain.SlotID{Type: domain.SlotMainRolling, Position: 1},
			StartDate: day("2025-09-01"),
			EndDate:   day("2025-09-07"),
			Status:    domain.StatusCancelled,
		},
	}}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SlotType: domain.SlotMainRolling,
		From:     day("2025-09-01"),
		To:       day("2025-09-07"),
	})
	require.NoError(t, err)

	for _, pos := range resp.Positions {
		for _, d := range pos.Days {
			assert.True(t, d.Available)
		}
	}
}

func TestGetAvailability_Validation(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SlotType: domain.SlotType("SIDEBAR"),
		From:     day("2025-09-01"),
		To:       day("2025-09-07"),
	})
	assert.ErrorIs(t, err, ErrInvalidSlotKind)

	_, err = uc.Execute(context.Background(), &Request{
		SlotType: domain.SlotCategoryTop,
		From:     day("2025-09-01"),
		To:       day("2025-09-07"),
	})
	assert.ErrorIs(t, err, ErrInvalidSlotKind)

	_, err = uc.Execute(context.Background(), &Request{
		SlotType: domain.SlotMainRolling,
		From:     day("2025-09-07"),
		To:       day("2025-09-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{
		SlotType: domain.SlotMainRolling,
		From:     day("2025-01-01"),
		To:       day("2025-12-31"),
	})
	assert.ErrorIs(t, err, ErrRangeTooWide)
}
