package list_active_tokens

import (
	"context"

	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens/models"
)

type TokenService interface {
	ListActive(ctx context.Context) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
