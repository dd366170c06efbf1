package get_day_menu

import "time"

// Request модель запроса меню дня
type Request struct {
	Date  string // YYYY-MM-DD
	Block string
	Floor string
}

// Response меню дня для локации пользователя
type Response struct {
	Date           string
	Day            string
	Published      bool
	AvailableDates []string
	Sections       []Section // пусто, если меню не опубликовано
}

// Section секция меню с окном бронирования
type Section struct {
	Name        string
	Time        string // действующее время для локации
	WindowOpen  time.Time
	WindowClose time.Time
	Bookable    bool
	Items       []Item
}

// Item позиция меню
type Item struct {
	Title      string
	Price      int64
	Time       string
	Menu       string
	PortionKey *string
	Remaining  *int // nil, если позиция без лимита
	CanBook    bool
}
