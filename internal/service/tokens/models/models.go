package models

import (
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// BookingResponse выданный токен для экрана QR и сканера
type BookingResponse struct {
	Token       string     `json:"token"`
	Date        string     `json:"date"`
	SectionName string     `json:"section"`
	ItemTitle   string     `json:"item"`
	Price       int64      `json:"price"`
	PortionKey  *string    `json:"portionKey,omitempty"`
	Block       *string    `json:"block,omitempty"`
	Floor       *string    `json:"floor,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Consumed    bool       `json:"consumed"`
	ConsumedAt  *time.Time `json:"consumedAt,omitempty"`
	Expired     bool       `json:"expired"`
	Active      bool       `json:"active"`
}

// BookingListResponse список токенов
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// ClearResponse результат очистки хранилища
type ClearResponse struct {
	Removed int64 `json:"removed"`
}

// FromDomainBooking конвертирует доменную модель; флаги считаются на момент now
func FromDomainBooking(b *domain.Booking, now time.Time) BookingResponse {
	return BookingResponse{
		Token:       b.Token,
		Date:        b.Date,
		SectionName: b.SectionName,
		ItemTitle:   b.ItemTitle,
		Price:       b.Price,
		PortionKey:  b.PortionKey,
		Block:       b.Block,
		Floor:       b.Floor,
		CreatedAt:   b.CreatedAt,
		ExpiresAt:   b.ExpiresAt,
		Consumed:    b.Consumed,
		ConsumedAt:  b.ConsumedAt,
		Expired:     b.IsExpired(now),
		Active:      b.IsActive(now),
	}
}

// FromDomainBookings конвертирует список
func FromDomainBookings(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b, now))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
