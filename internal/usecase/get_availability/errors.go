package get_availability

import "errors"

var (
	// ErrInvalidSlotKind возвращается при некорректном типе слота или категории
	ErrInvalidSlotKind = errors.New("get_availability: invalid slot kind")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("get_availability: invalid date range")

	// ErrRangeTooWide возвращается, когда запрошен слишком длинный период
	ErrRangeTooWide = errors.New("get_availability: requested range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
