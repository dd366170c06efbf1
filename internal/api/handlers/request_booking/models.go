package request_booking

import (
	"time"

	requestBooking "github.com/m04kA/SMC-CanteenBooking/internal/usecase/request_booking"
)

// Причины отказа в ответе 409
const (
	reasonOutsideWindow = "outside_window"
	reasonNoMenu        = "no_menu"
	reasonSoldOut       = "sold_out"
)

// RequestBookingRequest HTTP request model
type RequestBookingRequest struct {
	Date    string `json:"date"` // "2026-10-16"
	Section string `json:"section"`
	Item    string `json:"item"`
	Price   *int64 `json:"price,omitempty"`
	Block   string `json:"block,omitempty"`
	Floor   string `json:"floor,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Token       string  `json:"token"`
	Date        string  `json:"date"`
	Section     string  `json:"section"`
	Item        string  `json:"item"`
	Price       int64   `json:"price"`
	PortionKey  *string `json:"portionKey,omitempty"`
	Remaining   *int    `json:"remaining,omitempty"`
	Block       *string `json:"block,omitempty"`
	Floor       *string `json:"floor,omitempty"`
	ServiceTime string  `json:"serviceTime"`
	CreatedAt   string  `json:"createdAt"`
	ExpiresAt   string  `json:"expiresAt"`
}

// RejectionResponse ответ 409: текст для пользователя и машинная причина
type RejectionResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestBookingRequest) ToUseCaseRequest() *requestBooking.Request {
	return &requestBooking.Request{
		Date:        r.Date,
		SectionName: r.Section,
		ItemTitle:   r.Item,
		Price:       r.Price,
		Block:       r.Block,
		Floor:       r.Floor,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestBooking.Response) *BookingResponse {
	return &BookingResponse{
		Token:       resp.Token,
		Date:        resp.Date,
		Section:     resp.SectionName,
		Item:        resp.ItemTitle,
		Price:       resp.Price,
		PortionKey:  resp.PortionKey,
		Remaining:   resp.Remaining,
		Block:       resp.Block,
		Floor:       resp.Floor,
		ServiceTime: resp.ServiceTime,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		ExpiresAt:   resp.ExpiresAt.Format(time.RFC3339),
	}
}
