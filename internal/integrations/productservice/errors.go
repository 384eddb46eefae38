package productservice

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("productservice client: product not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("productservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("productservice client: invalid response")
)
