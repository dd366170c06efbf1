package portion

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-CanteenBooking/pkg/txmanager"
)

// MemoryLedger счетчики порций в памяти процесса
type MemoryLedger struct {
	mu       sync.Mutex
	counters map[string]map[string]int // date -> portion key -> remaining
}

// NewMemoryLedger создает пустой in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counters: make(map[string]map[string]int)}
}

// Ensure создает отсутствующие счетчики; существующие не перезаписываются
func (l *MemoryLedger) Ensure(_ context.Context, date string, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	day, ok := l.counters[date]
	if !ok {
		day = make(map[string]int, len(counts))
		l.counters[date] = day
	}
	for key, n := range counts {
		if _, exists := day[key]; exists {
			continue
		}
		if n < 0 {
			n = 0
		}
		day[key] = n
	}
	return nil
}

// Remaining возвращает остаток; tracked=false - счетчика нет (без лимита)
func (l *MemoryLedger) Remaining(_ context.Context, date, portionKey string) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.counters[date][portionKey]
	return n, ok, nil
}

// TryDecrement атомарно списывает одну порцию, если она есть.
// В транзакции регистрирует компенсацию на случай отката.
func (l *MemoryLedger) TryDecrement(ctx context.Context, date, portionKey string) (bool, error) {
	if portionKey == "" {
		return true, nil
	}

	l.mu.Lock()
	day := l.counters[date]
	n, tracked := day[portionKey]
	if !tracked {
		l.mu.Unlock()
		return true, nil
	}
	if n <= 0 {
		l.mu.Unlock()
		return false, nil
	}
	day[portionKey] = n - 1
	l.mu.Unlock()

	txmanager.OnRollback(ctx, func(context.Context) {
		l.restore(date, portionKey)
	})
	return true, nil
}

// Snapshot возвращает все счетчики на дату
func (l *MemoryLedger) Snapshot(_ context.Context, date string) (map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make(map[string]int, len(l.counters[date]))
	for key, n := range l.counters[date] {
		result[key] = n
	}
	return result, nil
}

func (l *MemoryLedger) restore(date, portionKey string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if day, ok := l.counters[date]; ok {
		if _, tracked := day[portionKey]; tracked {
			day[portionKey]++
		}
	}
}
