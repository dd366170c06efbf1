package portions

import "errors"

var (
	// ErrUnknownPortionKey возвращается для ключа, которого нет в каталоге
	ErrUnknownPortionKey = errors.New("unknown portion key")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
