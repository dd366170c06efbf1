package clear_tokens

import (
	"context"

	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens/models"
)

type TokenService interface {
	ClearAll(ctx context.Context, confirmed bool) (*models.ClearResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
