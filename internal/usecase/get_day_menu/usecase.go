package get_day_menu

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/internal/schedule"
	"github.com/m04kA/SMC-CanteenBooking/pkg/ptr"
)

// UseCase собирает меню дня: каталог, снапшот меню и остатки порций
type UseCase struct {
	menu         MenuSource
	ledger       PortionLedger
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(menu MenuSource, ledger PortionLedger, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		menu:         menu,
		ledger:       ledger,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения меню дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayMenu: date=%s, block=%s, floor=%s", req.Date, req.Block, req.Floor)

	referenceDate, err := time.ParseInLocation(domain.DateFormat, req.Date, uc.location)
	if err != nil {
		uc.logger.Warn("GetDayMenu: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	dates, err := uc.menu.AvailableDates(ctx)
	if err != nil {
		uc.logger.Error("GetDayMenu: failed to get available dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get available dates: %v", ErrInternal, err)
	}

	menu, err := uc.menu.GetDayMenu(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDayMenu: failed to get menu for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	response := &Response{
		Date:           req.Date,
		Day:            menu.Day,
		Published:      menu.IsPublished(),
		AvailableDates: dates,
		Sections:       []Section{},
	}

	if !response.Published {
		uc.logger.Info("GetDayMenu: no menu published for %s", req.Date)
		return response, nil
	}

	now := uc.timeProvider.Now().In(uc.location)

	// Первое чтение опубликованного меню создает счетчики; прошедшие дни только читаются
	if !domain.IsPastDate(req.Date, now) {
		if err := uc.ledger.Ensure(ctx, req.Date, menu.PortionCounts()); err != nil {
			uc.logger.Error("GetDayMenu: failed to seed counters for %s: %v", req.Date, err)
			return nil, fmt.Errorf("%w: failed to seed counters: %v", ErrInternal, err)
		}
	}

	counters, err := uc.ledger.Snapshot(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDayMenu: failed to read counters for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to read counters: %v", ErrInternal, err)
	}

	loc := domain.Location{Block: req.Block, Floor: req.Floor}

	for _, section := range domain.Schedule() {
		descriptor := schedule.EffectiveDescriptor(&section, loc)
		window, err := schedule.ResolveWindow(descriptor, referenceDate)
		if err != nil {
			uc.logger.Error("GetDayMenu: section %s has malformed time %q: %v", section.Name, descriptor, err)
			return nil, fmt.Errorf("%w: section %s: %v", ErrInternal, section.Name, err)
		}

		view := Section{
			Name:        section.Name,
			Time:        descriptor,
			WindowOpen:  window.Open,
			WindowClose: window.Close,
			Bookable:    window.IsEligible(referenceDate, now),
			Items:       make([]Item, 0, len(section.Items)),
		}

		for _, item := range section.Items {
			view.Items = append(view.Items, buildItem(item, menu, counters, view.Bookable))
		}

		response.Sections = append(response.Sections, view)
	}

	return response, nil
}

// buildItem собирает позицию: описание из меню и остаток из счетчиков
func buildItem(item domain.MenuItem, menu *domain.DayMenu, counters map[string]int, sectionBookable bool) Item {
	view := Item{
		Title:      item.Title,
		Price:      item.Price,
		Time:       item.Time,
		Menu:       menu.Description(item.Title),
		PortionKey: ptr.NonEmpty(item.PortionKey),
	}

	available := true
	if item.IsLimited() {
		if n, tracked := counters[item.PortionKey]; tracked {
			view.Remaining = ptr.Ptr(n)
			available = n > 0
		}
	}

	view.CanBook = sectionBookable && available
	return view
}
