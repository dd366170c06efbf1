package get_token

import (
	"context"

	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens/models"
)

type TokenService interface {
	Get(ctx context.Context, token string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
