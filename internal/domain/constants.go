package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default business values
const (
	MaxAdminPageSize     = 200 // ограничение размера страницы в админке
	DefaultAdminPageSize = 20
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// BlockingStatuses статусы, которые удерживают слот за бронированием.
// Используются в проверке пересечений дат.
var BlockingStatuses = []BookingStatus{
	StatusReservedUnpaid,
	StatusReservedPaid,
	StatusActive,
}

// ServableStatuses статусы, допустимые к показу: ACTIVE всегда,
// RESERVED_PAID как страховка на случай отставшего sweep'а
// (см. FindServableFor, диапазон дат проверяется отдельно).
var ServableStatuses = []BookingStatus{
	StatusActive,
	StatusReservedPaid,
}

// DateOnly truncates a timestamp to its calendar day in UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
