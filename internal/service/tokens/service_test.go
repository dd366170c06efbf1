package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/internal/infra/storage/token"
	"github.com/m04kA/SMC-CanteenBooking/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

var issuedAt = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, now time.Time) (*Service, *token.MemoryStore) {
	t.Helper()

	store := token.NewMemoryStore()
	for _, tok := range []string{"a", "b"} {
		require.NoError(t, store.Issue(context.Background(), &domain.Booking{
			Token:       tok,
			Date:        "2026-10-16",
			SectionName: domain.SectionAfternoon,
			ItemTitle:   "THALI LUNCH",
			Price:       65,
			CreatedAt:   issuedAt,
			ExpiresAt:   issuedAt.Add(domain.TokenValidity),
		}))
	}

	svc := NewService(store, logger.NewNop())
	svc.timeProvider = &fixedTime{now: now}
	return svc, store
}

func TestService_RedeemAndList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, issuedAt.Add(time.Hour))

	list, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	require.NoError(t, svc.Redeem(ctx, "a"))
	require.NoError(t, svc.Redeem(ctx, "a"))
	require.NoError(t, svc.Redeem(ctx, "never-issued"))

	list, err = svc.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "b", list.Bookings[0].Token)

	got, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.Consumed)
	assert.False(t, got.Active)
	require.NotNil(t, got.ConsumedAt)

	assert.ErrorIs(t, svc.Redeem(ctx, " "), ErrInvalidInput)
}

func TestService_GetExpired(t *testing.T) {
	svc, _ := newService(t, issuedAt.Add(7*time.Hour))

	got, err := svc.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.True(t, got.Expired)
	assert.False(t, got.Active)

	list, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Zero(t, list.Total)
	assert.NotNil(t, list.Bookings)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestService_ClearAll(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, issuedAt)

	_, err := svc.ClearAll(ctx, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	_, err = store.Get(ctx, "a")
	require.NoError(t, err)

	resp, err := svc.ClearAll(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Removed)

	_, err = svc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
