package create_booking

import "errors"

var (
	// ErrInvalidSlotKind возвращается при некорректной идентичности слота
	// (неизвестный тип, позиция вне диапазона, проблема с категорией)
	ErrInvalidSlotKind = errors.New("create_booking: invalid slot kind")

	// ErrInvalidDate возвращается при некорректном диапазоне дат
	ErrInvalidDate = errors.New("create_booking: invalid date range")

	// ErrSlotUnavailable возвращается, когда запрошенный диапазон пересекается
	// с существующим не отмененным бронированием того же слота
	ErrSlotUnavailable = errors.New("create_booking: slot is not available for the requested dates")

	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("create_booking: product not found")

	// ErrNotOwner возвращается, когда товар не принадлежит селлеру
	ErrNotOwner = errors.New("create_booking: product does not belong to the seller")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
