package get_day_menu

import (
	"context"

	getDayMenu "github.com/m04kA/SMC-CanteenBooking/internal/usecase/get_day_menu"
)

type GetDayMenuUseCase interface {
	Execute(ctx context.Context, req *getDayMenu.Request) (*getDayMenu.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
