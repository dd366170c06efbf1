package kitchenfeed

import "time"

const (
	entityBooking = "booking"
	actionIssued  = "issued"
)

// BookingIssued данные события о выданном токене
type BookingIssued struct {
	Token      string    `json:"token"`
	Date       string    `json:"date"`
	Section    string    `json:"section"`
	Item       string    `json:"item"`
	Price      int64     `json:"price"`
	PortionKey *string   `json:"portionKey,omitempty"`
	Remaining  *int      `json:"remaining,omitempty"`
	IssuedAt   time.Time `json:"issuedAt"`
}

// Event конверт сообщения в топике кухни
type Event struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       BookingIssued     `json:"data"`
}
