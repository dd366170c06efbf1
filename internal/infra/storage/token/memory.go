package token

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/pkg/txmanager"
)

// MemoryStore хранилище токенов в памяти процесса
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]*domain.Booking
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]*domain.Booking)}
}

// Issue сохраняет выданный токен.
// В транзакции регистрирует удаление на случай отката.
func (s *MemoryStore) Issue(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	if _, exists := s.tokens[booking.Token]; exists {
		s.mu.Unlock()
		return ErrDuplicateToken
	}
	stored := *booking
	s.tokens[booking.Token] = &stored
	s.mu.Unlock()

	txmanager.OnRollback(ctx, func(context.Context) {
		s.mu.Lock()
		delete(s.tokens, booking.Token)
		s.mu.Unlock()
	})
	return nil
}

// Get возвращает бронирование по токену
func (s *MemoryStore) Get(_ context.Context, token string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.tokens[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	result := *booking
	return &result, nil
}

// ListActive возвращает неиспользованные и непросроченные токены, новые первыми
func (s *MemoryStore) ListActive(_ context.Context, now time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, booking := range s.tokens {
		if !booking.IsActive(now) {
			continue
		}
		b := *booking
		result = append(result, &b)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Token < result[j].Token
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// MarkConsumed помечает токен использованным.
// Повторное погашение и неизвестный токен - не ошибка.
func (s *MemoryStore) MarkConsumed(_ context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.tokens[token]
	if !ok || booking.Consumed {
		return nil
	}
	booking.Consumed = true
	consumedAt := at
	booking.ConsumedAt = &consumedAt
	return nil
}

// ClearAll удаляет все токены
func (s *MemoryStore) ClearAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.tokens))
	s.tokens = make(map[string]*domain.Booking)
	return n, nil
}
