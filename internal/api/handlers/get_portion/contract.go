package get_portion

import (
	"context"

	"github.com/m04kA/SMC-CanteenBooking/internal/service/portions/models"
)

type PortionService interface {
	Remaining(ctx context.Context, date, portionKey string) (*models.RemainingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
