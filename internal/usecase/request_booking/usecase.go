package request_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/internal/integrations/kitchenfeed"
	"github.com/m04kA/SMC-CanteenBooking/internal/schedule"
	"github.com/m04kA/SMC-CanteenBooking/pkg/ptr"
)

// Исходы бронирования для метрик
const (
	outcomeAdmitted      = "admitted"
	outcomeOutsideWindow = "outside_window"
	outcomeNoMenu        = "no_menu"
	outcomeSoldOut       = "sold_out"
	outcomeFailed        = "failed"
	outcomeInvalid       = "invalid"
)

// UseCase проверяет право на бронирование, списывает порцию и выдает токен
type UseCase struct {
	ledger         PortionLedger
	tokens         TokenStore
	menu           MenuSource
	publisher      EventPublisher
	recorder       OutcomeRecorder
	txManager      TransactionManager
	timeProvider   TimeProvider
	tokenGenerator TokenGenerator
	location       *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ledger PortionLedger,
	tokens TokenStore,
	menu MenuSource,
	publisher EventPublisher,
	recorder OutcomeRecorder,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		ledger:         ledger,
		tokens:         tokens,
		menu:           menu,
		publisher:      publisher,
		recorder:       recorder,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		tokenGenerator: &UUIDTokenGenerator{},
		location:       location,
		logger:         logger,
	}
}

// Execute выполняет use case бронирования.
// Списание порции и запись токена выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestBooking: date=%s, section=%s, item=%s, block=%s, floor=%s",
		req.Date, req.SectionName, req.ItemTitle, req.Block, req.Floor)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		uc.record(req.SectionName, outcomeInvalid)
		return nil, err
	}

	// 2. Находим секцию и позицию в каталоге
	section, item, err := resolveItem(req)
	if err != nil {
		uc.logger.Warn("RequestBooking: %v", err)
		uc.record(req.SectionName, outcomeInvalid)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	referenceDate, _ := time.ParseInLocation(domain.DateFormat, req.Date, uc.location)

	// 3. Окно бронирования с учетом локации
	descriptor := schedule.EffectiveDescriptor(section, domain.Location{Block: req.Block, Floor: req.Floor})
	window, err := schedule.ResolveWindow(descriptor, referenceDate)
	if err != nil {
		uc.logger.Error("RequestBooking: section %s has malformed time %q: %v", section.Name, descriptor, err)
		uc.record(section.Name, outcomeFailed)
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedTimeDescriptor, descriptor, err)
	}

	if !window.IsEligible(referenceDate, now) {
		uc.logger.Info("RequestBooking: outside window for %s (%s), open=%s close=%s now=%s",
			section.Name, req.Date, window.Open.Format(time.RFC3339), window.Close.Format(time.RFC3339), now.Format(time.RFC3339))
		uc.record(section.Name, outcomeOutsideWindow)
		return nil, ErrOutsideWindow
	}

	// 4. Меню дня должно быть опубликовано
	menu, err := uc.menu.GetDayMenu(ctx, req.Date)
	if err != nil {
		uc.logger.Error("RequestBooking: failed to get menu for %s: %v", req.Date, err)
		uc.record(section.Name, outcomeFailed)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}
	if !menu.IsPublished() {
		uc.logger.Info("RequestBooking: no menu published for %s", req.Date)
		uc.record(section.Name, outcomeNoMenu)
		return nil, ErrNoMenuPublished
	}

	// 5. Счетчики создаются при первом чтении опубликованного меню
	if err := uc.ledger.Ensure(ctx, req.Date, menu.PortionCounts()); err != nil {
		uc.logger.Error("RequestBooking: failed to seed counters for %s: %v", req.Date, err)
		uc.record(section.Name, outcomeFailed)
		return nil, fmt.Errorf("%w: failed to seed counters: %v", ErrInternal, err)
	}

	// 6. Предварительная проверка остатка, чтобы отличить распродажу от проигранной гонки
	if item.IsLimited() {
		remaining, tracked, err := uc.ledger.Remaining(ctx, req.Date, item.PortionKey)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to read remaining %s: %v", item.PortionKey, err)
			uc.record(section.Name, outcomeFailed)
			return nil, fmt.Errorf("%w: failed to read remaining: %v", ErrInternal, err)
		}
		if tracked && remaining <= 0 {
			uc.logger.Info("RequestBooking: %s sold out (%s)", item.Title, item.PortionKey)
			uc.record(section.Name, outcomeSoldOut)
			return nil, ErrSoldOut
		}
	}

	booking := &domain.Booking{
		Token:       uc.tokenGenerator.NewToken(),
		Date:        req.Date,
		SectionName: section.Name,
		ItemTitle:   item.Title,
		Price:       item.Price,
		PortionKey:  ptr.NonEmpty(item.PortionKey),
		Block:       ptr.NonEmpty(req.Block),
		Floor:       ptr.NonEmpty(req.Floor),
		CreatedAt:   now,
		ExpiresAt:   now.Add(domain.TokenValidity),
	}

	// 7. Списание и выдача токена атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		ok, err := uc.ledger.TryDecrement(txCtx, req.Date, item.PortionKey)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to decrement %s: %v", item.PortionKey, err)
			return fmt.Errorf("%w: failed to decrement portion: %v", ErrBookingFailed, err)
		}
		if !ok {
			uc.logger.Info("RequestBooking: lost race for last portion of %s (%s)", item.Title, item.PortionKey)
			return ErrSoldOut
		}

		if err := uc.tokens.Issue(txCtx, booking); err != nil {
			uc.logger.Error("RequestBooking: failed to issue token: %v", err)
			return fmt.Errorf("%w: failed to issue token: %v", ErrBookingFailed, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSoldOut):
			uc.record(section.Name, outcomeSoldOut)
			return nil, err
		case errors.Is(err, ErrBookingFailed):
			uc.record(section.Name, outcomeFailed)
			return nil, err
		default:
			// Ошибка начала или фиксации транзакции
			uc.logger.Error("RequestBooking: transaction failed: %v", err)
			uc.record(section.Name, outcomeFailed)
			return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
		}
	}

	uc.record(section.Name, outcomeAdmitted)
	if item.IsLimited() && uc.recorder != nil {
		uc.recorder.ObservePortionDecrement(item.PortionKey)
	}

	remaining := uc.remainingAfter(ctx, req.Date, item)
	uc.publish(ctx, booking, remaining)

	uc.logger.Info("RequestBooking: issued token=%s for %s/%s on %s", booking.Token, section.Name, item.Title, req.Date)

	return &Response{
		Token:       booking.Token,
		Date:        booking.Date,
		SectionName: booking.SectionName,
		ItemTitle:   booking.ItemTitle,
		Price:       booking.Price,
		PortionKey:  booking.PortionKey,
		Remaining:   remaining,
		Block:       booking.Block,
		Floor:       booking.Floor,
		ServiceTime: descriptor,
		CreatedAt:   booking.CreatedAt,
		ExpiresAt:   booking.ExpiresAt,
	}, nil
}

// remainingAfter читает остаток после коммита; ошибка чтения не влияет на бронирование
func (uc *UseCase) remainingAfter(ctx context.Context, date string, item *domain.MenuItem) *int {
	if !item.IsLimited() {
		return nil
	}

	remaining, tracked, err := uc.ledger.Remaining(ctx, date, item.PortionKey)
	if err != nil {
		uc.logger.Warn("RequestBooking: failed to read remaining after booking %s: %v", item.PortionKey, err)
		return nil
	}
	if !tracked {
		return nil
	}
	return &remaining
}

// publish отправляет событие на кухню; ошибки только логируются
func (uc *UseCase) publish(ctx context.Context, booking *domain.Booking, remaining *int) {
	if uc.publisher == nil {
		return
	}

	event := kitchenfeed.BookingIssued{
		Token:      booking.Token,
		Date:       booking.Date,
		Section:    booking.SectionName,
		Item:       booking.ItemTitle,
		Price:      booking.Price,
		PortionKey: booking.PortionKey,
		Remaining:  remaining,
		IssuedAt:   booking.CreatedAt,
	}

	if err := uc.publisher.PublishBookingIssued(ctx, event); err != nil {
		uc.logger.Warn("RequestBooking: failed to publish kitchen event for token=%s: %v", booking.Token, err)
	}
}

func (uc *UseCase) record(section, outcome string) {
	if uc.recorder != nil {
		uc.recorder.ObserveBooking(section, outcome)
	}
}
