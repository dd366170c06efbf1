package request_booking

import "time"

// Request модель запроса на бронирование
type Request struct {
	Date        string // Дата (YYYY-MM-DD), должна совпадать с сегодняшней
	SectionName string // Секция меню (Morning, Afternoon, Evening, Night)
	ItemTitle   string // Название позиции
	Price       *int64 // Цена, которую видел пользователь (опционально)
	Block       string // Корпус пользователя
	Floor       string // Этаж пользователя
}

// Response модель ответа с выданным токеном
type Response struct {
	Token       string
	Date        string
	SectionName string
	ItemTitle   string
	Price       int64
	PortionKey  *string
	Remaining   *int // остаток после списания; nil для позиций без лимита
	Block       *string
	Floor       *string

	ServiceTime string // действующее время секции для локации
	CreatedAt   time.Time
	ExpiresAt   time.Time
}
