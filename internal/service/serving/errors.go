package serving

import "errors"

var (
	// ErrInvalidSlotKind возвращается при неизвестном типе слота,
	// позиции вне диапазона или некорректной категории
	ErrInvalidSlotKind = errors.New("serving: invalid slot identity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("serving: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("serving: internal error")
)
