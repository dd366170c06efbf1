package portions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// PortionLedger интерфейс счетчиков порций
type PortionLedger interface {
	Ensure(ctx context.Context, date string, counts map[string]int) error
	Remaining(ctx context.Context, date, portionKey string) (int, bool, error)
}

// MenuSource интерфейс источника меню дня
type MenuSource interface {
	GetDayMenu(ctx context.Context, date string) (*domain.DayMenu, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
