package get_day_menu

import (
	"time"

	getDayMenu "github.com/m04kA/SMC-CanteenBooking/internal/usecase/get_day_menu"
)

// DayMenuResponse HTTP response model
type DayMenuResponse struct {
	Date           string            `json:"date"`
	Day            string            `json:"day,omitempty"`
	Published      bool              `json:"published"`
	AvailableDates []string          `json:"availableDates"`
	Sections       []SectionResponse `json:"sections"`
}

// SectionResponse секция меню
type SectionResponse struct {
	Name        string         `json:"name"`
	Time        string         `json:"time"`
	WindowOpen  string         `json:"windowOpen"`
	WindowClose string         `json:"windowClose"`
	Bookable    bool           `json:"bookable"`
	Items       []ItemResponse `json:"items"`
}

// ItemResponse позиция меню
type ItemResponse struct {
	Title      string  `json:"title"`
	Price      int64   `json:"price"`
	Time       string  `json:"time,omitempty"`
	Menu       string  `json:"menu"`
	PortionKey *string `json:"portionKey,omitempty"`
	Remaining  *int    `json:"remaining,omitempty"`
	CanBook    bool    `json:"canBook"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayMenu.Response) *DayMenuResponse {
	sections := make([]SectionResponse, 0, len(resp.Sections))
	for _, s := range resp.Sections {
		items := make([]ItemResponse, 0, len(s.Items))
		for _, item := range s.Items {
			items = append(items, ItemResponse{
				Title:      item.Title,
				Price:      item.Price,
				Time:       item.Time,
				Menu:       item.Menu,
				PortionKey: item.PortionKey,
				Remaining:  item.Remaining,
				CanBook:    item.CanBook,
			})
		}
		sections = append(sections, SectionResponse{
			Name:        s.Name,
			Time:        s.Time,
			WindowOpen:  s.WindowOpen.Format(time.RFC3339),
			WindowClose: s.WindowClose.Format(time.RFC3339),
			Bookable:    s.Bookable,
			Items:       items,
		})
	}

	dates := resp.AvailableDates
	if dates == nil {
		dates = []string{}
	}

	return &DayMenuResponse{
		Date:           resp.Date,
		Day:            resp.Day,
		Published:      resp.Published,
		AvailableDates: dates,
		Sections:       sections,
	}
}
