package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда бронирование не принадлежит запрашивающему
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrAmountMismatch возвращается, когда сумма оплаты не совпадает с ценой бронирования
	ErrAmountMismatch = errors.New("bookings: paid amount does not match booking price")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrNotEditable возвращается при попытке изменить бронирование после оплаты
	ErrNotEditable = errors.New("bookings: booking is no longer editable")

	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("bookings: product not found")

	// ErrNotOwner возвращается, когда товар не принадлежит селлеру
	ErrNotOwner = errors.New("bookings: product does not belong to the seller")

	// ErrSlotUnavailable возвращается, когда новый диапазон relist'а пересекается
	// с другим бронированием
	ErrSlotUnavailable = errors.New("bookings: slot is not available for the requested dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
