package menuservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса меню с кэшированием снапшота
type Client struct {
	baseURL    string
	httpClient *http.Client
	cacheTTL   time.Duration
	log        Logger

	refresh   singleflight.Group
	mu        sync.RWMutex
	cached    Snapshot
	fetchedAt time.Time
	now       func() time.Time
}

// NewClient создает новый экземпляр клиента сервиса меню
func NewClient(baseURL string, timeout, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}
}

// FetchSnapshot запрашивает полный снапшот меню без кэша
func (c *Client) FetchSnapshot(ctx context.Context) (Snapshot, error) {
	url := fmt.Sprintf("%s/menu/daily", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var snapshot Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if snapshot == nil {
		snapshot = Snapshot{}
	}

	return snapshot, nil
}

// Snapshot возвращает снапшот из кэша или запрашивает новый.
// Одновременные промахи кэша ждут один общий запрос, блокировка на время
// запроса не удерживается. При недоступности сервиса отдает устаревший кэш.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.RLock()
	cached, fetchedAt := c.cached, c.fetchedAt
	c.mu.RUnlock()

	if cached != nil && c.now().Sub(fetchedAt) < c.cacheTTL {
		return cached, nil
	}

	// запрос не отменяется вместе с первым вызывающим; время ограничено таймаутом клиента
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.refresh.Do("snapshot", func() (interface{}, error) {
		return c.refreshSnapshot(fetchCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.(Snapshot), nil
}

func (c *Client) refreshSnapshot(ctx context.Context) (Snapshot, error) {
	snapshot, err := c.FetchSnapshot(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if c.cached != nil {
			c.log.Warn("MenuService unavailable, serving cached menu fetched at %s: %v", c.fetchedAt.Format(time.RFC3339), err)
			return c.cached, nil
		}
		c.log.Error("MenuService unavailable and no cached menu: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.cached = snapshot
	c.fetchedAt = c.now()
	c.log.Info("Menu snapshot refreshed: %d days", len(snapshot))

	return snapshot, nil
}

// GetDayMenu возвращает меню на дату
func (c *Client) GetDayMenu(ctx context.Context, date string) (*domain.DayMenu, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.DayMenu(date), nil
}

// AvailableDates возвращает даты, на которые есть меню
func (c *Client) AvailableDates(ctx context.Context) ([]string, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Dates(), nil
}
