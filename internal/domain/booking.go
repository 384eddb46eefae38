package domain

import "time"

// BookingStatus represents the status of an ad booking
type BookingStatus string

const (
	StatusReservedUnpaid BookingStatus = "RESERVED_UNPAID"
	StatusReservedPaid   BookingStatus = "RESERVED_PAID"
	StatusActive         BookingStatus = "ACTIVE"
	StatusCompleted      BookingStatus = "COMPLETED"
	StatusCancelled      BookingStatus = "CANCELLED"
)

// Booking represents a paid reservation of an ad slot for a date range.
// StartDate and EndDate are inclusive calendar days (time part is ignored).
type Booking struct {
	ID       int64
	Slot     SlotID
	SellerID int64
	ProductID int64

	StartDate time.Time
	EndDate   time.Time

	// Price in KRW, fixed at creation time; immutable once paid
	Price int64

	Status BookingStatus

	// Creative fields (banner is meaningful only for MAIN_* slots)
	BannerImageURL *string
	Title          *string
	Description    *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking holds its slot range against
// other bookings (any non-terminal state counts)
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusReservedUnpaid ||
		b.Status == StatusReservedPaid ||
		b.Status == StatusActive
}

// Editable returns true while slot, dates and product may still be changed.
// The booking is frozen the moment it is paid.
func (b *Booking) Editable() bool {
	return b.Status == StatusReservedUnpaid
}

// CanBeCancelledBySeller returns true if the owning seller may still cancel
func (b *Booking) CanBeCancelledBySeller() bool {
	return b.Status == StatusReservedUnpaid || b.Status == StatusReservedPaid
}

// Overlaps reports whether the booking's range intersects [start, end]
// (inclusive boundaries on both sides)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !DateOnly(b.StartDate).After(DateOnly(end)) &&
		!DateOnly(start).After(DateOnly(b.EndDate))
}

// CoversDay reports whether day falls inside the booking's range
func (b *Booking) CoversDay(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(b.StartDate)) && !d.After(DateOnly(b.EndDate))
}

// DurationDays returns the number of calendar days the booking runs for
// (both boundaries inclusive)
func (b *Booking) DurationDays() int {
	return int(DateOnly(b.EndDate).Sub(DateOnly(b.StartDate))/(24*time.Hour)) + 1
}

// DaysUntilStart returns how many days remain before go-live, negative once started
func (b *Booking) DaysUntilStart(today time.Time) int {
	return int(DateOnly(b.StartDate).Sub(DateOnly(today)) / (24 * time.Hour))
}

// SellerBookingsFilter filter for a seller's booking history
type SellerBookingsFilter struct {
	SellerID int64
	Status   *BookingStatus
	From     *time.Time // range filter: bookings overlapping [From, To]
	To       *time.Time
}

// AdminBookingsFilter filter for the administrator booking list
type AdminBookingsFilter struct {
	Status   *BookingStatus
	SlotType *SlotType
	Category *string
	SellerID *int64
	Limit    int
	Offset   int
}
