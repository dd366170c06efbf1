package portions

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/portions/models"
)

// Service сервис чтения остатков порций
type Service struct {
	ledger       PortionLedger
	menu         MenuSource
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса порций
func NewService(ledger PortionLedger, menu MenuSource, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{
		ledger:       ledger,
		menu:         menu,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Remaining возвращает остаток по ключу на дату.
// Опубликованное меню засеивает счетчики при первом чтении; прошедшие дни не засеиваются.
func (s *Service) Remaining(ctx context.Context, date, portionKey string) (*models.RemainingResponse, error) {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if !domain.IsKnownPortionKey(portionKey) {
		s.logger.Warn("Remaining: unknown portion key=%s", portionKey)
		return nil, fmt.Errorf("%w: %s", ErrUnknownPortionKey, portionKey)
	}

	menu, err := s.menu.GetDayMenu(ctx, date)
	if err != nil {
		s.logger.Error("Remaining: failed to get menu for %s: %v", date, err)
		return nil, fmt.Errorf("%w: Remaining - menu error: %v", ErrInternal, err)
	}
	if menu.IsPublished() && !domain.IsPastDate(date, s.timeProvider.Now().In(s.location)) {
		if err := s.ledger.Ensure(ctx, date, menu.PortionCounts()); err != nil {
			s.logger.Error("Remaining: failed to seed counters for %s: %v", date, err)
			return nil, fmt.Errorf("%w: Remaining - seed error: %v", ErrInternal, err)
		}
	}

	n, tracked, err := s.ledger.Remaining(ctx, date, portionKey)
	if err != nil {
		s.logger.Error("Remaining: ledger error for %s/%s: %v", date, portionKey, err)
		return nil, fmt.Errorf("%w: Remaining - ledger error: %v", ErrInternal, err)
	}

	resp := &models.RemainingResponse{
		Date:       date,
		PortionKey: portionKey,
		Tracked:    tracked,
	}
	if tracked {
		resp.Remaining = &n
	}
	return resp, nil
}
