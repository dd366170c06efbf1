package request_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SectionName) == "" {
		return fmt.Errorf("%w: section is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ItemTitle) == "" {
		return fmt.Errorf("%w: item is required", ErrInvalidInput)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	return nil
}

// resolveItem находит секцию и позицию в каталоге
func resolveItem(req *Request) (*domain.MenuSection, *domain.MenuItem, error) {
	section, ok := domain.FindSection(req.SectionName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSection, req.SectionName)
	}

	item, ok := section.FindItem(req.ItemTitle)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q in %s", ErrItemNotFound, req.ItemTitle, section.Name)
	}

	if req.Price != nil && *req.Price != item.Price {
		return nil, nil, fmt.Errorf("%w: got %d, menu price %d", ErrPriceMismatch, *req.Price, item.Price)
	}

	return section, item, nil
}
