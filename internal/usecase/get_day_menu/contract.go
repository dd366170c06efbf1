package get_day_menu

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// MenuSource интерфейс источника меню
type MenuSource interface {
	GetDayMenu(ctx context.Context, date string) (*domain.DayMenu, error)
	AvailableDates(ctx context.Context) ([]string, error)
}

// PortionLedger интерфейс счетчиков порций
type PortionLedger interface {
	Ensure(ctx context.Context, date string, counts map[string]int) error
	Snapshot(ctx context.Context, date string) (map[string]int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
