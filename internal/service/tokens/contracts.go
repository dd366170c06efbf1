package tokens

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// TokenStore интерфейс хранилища токенов
type TokenStore interface {
	Get(ctx context.Context, token string) (*domain.Booking, error)
	ListActive(ctx context.Context, now time.Time) ([]*domain.Booking, error)
	MarkConsumed(ctx context.Context, token string, at time.Time) error
	ClearAll(ctx context.Context) (int64, error)
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
