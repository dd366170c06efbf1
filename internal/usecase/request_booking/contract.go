package request_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/internal/integrations/kitchenfeed"
)

// PortionLedger интерфейс счетчиков порций
type PortionLedger interface {
	Ensure(ctx context.Context, date string, counts map[string]int) error
	Remaining(ctx context.Context, date, portionKey string) (int, bool, error)
	TryDecrement(ctx context.Context, date, portionKey string) (bool, error)
}

// TokenStore интерфейс хранилища токенов
type TokenStore interface {
	Issue(ctx context.Context, booking *domain.Booking) error
}

// MenuSource интерфейс источника меню дня
type MenuSource interface {
	GetDayMenu(ctx context.Context, date string) (*domain.DayMenu, error)
}

// EventPublisher интерфейс ленты событий для кухни
type EventPublisher interface {
	PublishBookingIssued(ctx context.Context, event kitchenfeed.BookingIssued) error
}

// OutcomeRecorder интерфейс метрик исходов бронирования
type OutcomeRecorder interface {
	ObserveBooking(section, outcome string)
	ObservePortionDecrement(portionKey string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// TokenGenerator генератор непредсказуемых токенов
type TokenGenerator interface {
	NewToken() string
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

// UUIDTokenGenerator выдает токены UUID v4 (crypto/rand)
type UUIDTokenGenerator struct{}

// NewToken возвращает новый токен
func (g *UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}
