package request_booking

import "errors"

var (
	// ErrOutsideWindow возвращается, когда бронирование сейчас закрыто
	ErrOutsideWindow = errors.New("request_booking: booking window is closed")

	// ErrNoMenuPublished возвращается, когда на дату нет меню
	ErrNoMenuPublished = errors.New("request_booking: no menu published for the date")

	// ErrSoldOut возвращается, когда порции закончились
	ErrSoldOut = errors.New("request_booking: sold out")

	// ErrMalformedTimeDescriptor возвращается при некорректном времени секции
	ErrMalformedTimeDescriptor = errors.New("request_booking: malformed time descriptor")

	// ErrBookingFailed возвращается, когда не удалось сохранить токен; списание откатывается
	ErrBookingFailed = errors.New("request_booking: booking failed")

	// ErrUnknownSection возвращается для секции, которой нет в расписании
	ErrUnknownSection = errors.New("request_booking: unknown section")

	// ErrItemNotFound возвращается, когда позиции нет в секции
	ErrItemNotFound = errors.New("request_booking: item not found in section")

	// ErrPriceMismatch возвращается, когда цена запроса расходится с каталогом
	ErrPriceMismatch = errors.New("request_booking: price does not match the menu")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)

const (
	// MessageBookingClosed текст для пользователя при закрытом окне или отсутствии меню
	MessageBookingClosed = "booking closed"

	// MessageSoldOut текст для пользователя при нехватке порций
	MessageSoldOut = "sold out"
)

// IsRejection возвращает true для ожидаемых отказов (не ошибок сервиса)
func IsRejection(err error) bool {
	return errors.Is(err, ErrOutsideWindow) ||
		errors.Is(err, ErrNoMenuPublished) ||
		errors.Is(err, ErrSoldOut)
}

// RejectionMessage возвращает текст отказа для пользователя
func RejectionMessage(err error) string {
	if errors.Is(err, ErrSoldOut) {
		return MessageSoldOut
	}
	return MessageBookingClosed
}
