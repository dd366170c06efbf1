package menuservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("menuservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("menuservice client: invalid response")

	// ErrUnavailable возвращается, когда меню недоступно и кэша нет
	ErrUnavailable = errors.New("menuservice: menu snapshot unavailable")
)
