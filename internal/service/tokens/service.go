package tokens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tokenRepo "github.com/m04kA/SMC-CanteenBooking/internal/infra/storage/token"
	"github.com/m04kA/SMC-CanteenBooking/internal/service/tokens/models"
)

// Service сервис для работы с выданными токенами
type Service struct {
	store        TokenStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса токенов
func NewService(store TokenStore, logger Logger) *Service {
	return &Service{
		store:        store,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get получает токен, включая погашенные и просроченные
func (s *Service) Get(ctx context.Context, token string) (*models.BookingResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	booking, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			s.logger.Warn("Get: token=%s not found", token)
			return nil, ErrTokenNotFound
		}
		s.logger.Error("Get: store error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: Get - store error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(booking, s.timeProvider.Now())
	return &resp, nil
}

// ListActive возвращает неиспользованные и непросроченные токены
func (s *Service) ListActive(ctx context.Context) (*models.BookingListResponse, error) {
	now := s.timeProvider.Now()

	bookings, err := s.store.ListActive(ctx, now)
	if err != nil {
		s.logger.Error("ListActive: store error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - store error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: found %d active tokens", len(bookings))
	return models.FromDomainBookings(bookings, now), nil
}

// Redeem гасит токен при сканировании.
// Повторное сканирование и неизвестный токен не считаются ошибкой.
func (s *Service) Redeem(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := s.store.MarkConsumed(ctx, token, s.timeProvider.Now()); err != nil {
		s.logger.Error("Redeem: store error for token=%s: %v", token, err)
		return fmt.Errorf("%w: Redeem - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Redeem: token=%s consumed", token)
	return nil
}

// ClearAll удаляет все токены; требует явного подтверждения
func (s *Service) ClearAll(ctx context.Context, confirmed bool) (*models.ClearResponse, error) {
	if !confirmed {
		s.logger.Warn("ClearAll: rejected without confirmation")
		return nil, ErrConfirmationRequired
	}

	removed, err := s.store.ClearAll(ctx)
	if err != nil {
		s.logger.Error("ClearAll: store error: %v", err)
		return nil, fmt.Errorf("%w: ClearAll - store error: %v", ErrInternal, err)
	}

	s.logger.Warn("ClearAll: removed %d tokens", removed)
	return &models.ClearResponse{Removed: removed}, nil
}
