package portion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/pkg/txmanager"
)

const (
	// DefaultRedisPrefix пространство ключей счетчиков
	DefaultRedisPrefix = "canteen:portion"

	// DefaultCounterTTL счетчики дня живут дольше самого дня
	DefaultCounterTTL = 72 * time.Hour
)

// decrementScript: -1 счетчика нет, 0 распродано, 1 списано
var decrementScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
	return -1
end
if tonumber(v) <= 0 then
	return 0
end
redis.call('DECR', KEYS[1])
return 1
`)

// restoreScript возвращает порцию только в существующий счетчик
var restoreScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return redis.call('INCR', KEYS[1])
end
return -1
`)

// RedisLedger счетчики порций в Redis, общие для нескольких инстансов
type RedisLedger struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewRedisLedger создает ledger поверх Redis
func NewRedisLedger(client redis.UniversalClient, prefix string, ttl time.Duration, logger Logger) *RedisLedger {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	if ttl <= 0 {
		ttl = DefaultCounterTTL
	}
	return &RedisLedger{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (l *RedisLedger) key(date, portionKey string) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, date, portionKey)
}

// Ensure создает отсутствующие счетчики через SETNX
func (l *RedisLedger) Ensure(ctx context.Context, date string, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}

	pipe := l.client.Pipeline()
	for portionKey, n := range counts {
		if n < 0 {
			n = 0
		}
		pipe.SetNX(ctx, l.key(date, portionKey), n, l.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Ensure - setnx: %v", ErrRedis, err)
	}
	return nil
}

// Remaining возвращает остаток; tracked=false если счетчика нет
func (l *RedisLedger) Remaining(ctx context.Context, date, portionKey string) (int, bool, error) {
	n, err := l.client.Get(ctx, l.key(date, portionKey)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: Remaining - get: %v", ErrRedis, err)
	}
	return n, true, nil
}

// TryDecrement атомарно списывает порцию Lua-скриптом
func (l *RedisLedger) TryDecrement(ctx context.Context, date, portionKey string) (bool, error) {
	if portionKey == "" {
		return true, nil
	}

	res, err := decrementScript.Run(ctx, l.client, []string{l.key(date, portionKey)}).Int()
	if err != nil {
		return false, fmt.Errorf("%w: TryDecrement - script: %v", ErrRedis, err)
	}

	switch res {
	case -1:
		return true, nil
	case 0:
		return false, nil
	}

	txmanager.OnRollback(ctx, func(ctx context.Context) {
		l.restore(ctx, date, portionKey)
	})
	return true, nil
}

// Snapshot возвращает все известные счетчики на дату
func (l *RedisLedger) Snapshot(ctx context.Context, date string) (map[string]int, error) {
	portionKeys := domain.PortionKeys()
	keys := make([]string, len(portionKeys))
	for i, portionKey := range portionKeys {
		keys[i] = l.key(date, portionKey)
	}

	values, err := l.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - mget: %v", ErrRedis, err)
	}

	result := make(map[string]int)
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var n int
		if _, err := fmt.Sscan(s, &n); err != nil {
			continue
		}
		result[portionKeys[i]] = n
	}
	return result, nil
}

func (l *RedisLedger) restore(ctx context.Context, date, portionKey string) {
	if err := restoreScript.Run(ctx, l.client, []string{l.key(date, portionKey)}).Err(); err != nil {
		if l.logger != nil {
			l.logger.Error("RedisLedger: failed to restore portion date=%s key=%s: %v", date, portionKey, err)
		}
		return
	}
	if l.logger != nil {
		l.logger.Warn("RedisLedger: portion restored after rollback date=%s key=%s", date, portionKey)
	}
}
