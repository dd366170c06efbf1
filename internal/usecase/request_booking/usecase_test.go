package request_booking

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/internal/infra/storage/portion"
	"github.com/m04kA/SMC-CanteenBooking/internal/infra/storage/token"
	"github.com/m04kA/SMC-CanteenBooking/internal/integrations/kitchenfeed"
	"github.com/m04kA/SMC-CanteenBooking/internal/integrations/menuservice"
	"github.com/m04kA/SMC-CanteenBooking/pkg/logger"
	"github.com/m04kA/SMC-CanteenBooking/pkg/ptr"
	"github.com/m04kA/SMC-CanteenBooking/pkg/txmanager"
)

const today = "2026-10-16"

var kolkata = time.FixedZone("IST", 5*3600+1800)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type sequenceTokens struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceTokens) NewToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("tok-%d", g.n)
}

type stubMenu struct {
	meals map[string]string
	err   error
}

func (s *stubMenu) GetDayMenu(_ context.Context, date string) (*domain.DayMenu, error) {
	if s.err != nil {
		return nil, s.err
	}
	if date != today {
		return &domain.DayMenu{Date: date, Meals: map[string]string{}}, nil
	}
	return &domain.DayMenu{Date: date, Day: "Friday", Meals: s.meals}, nil
}

type failingTokens struct{}

func (failingTokens) Issue(context.Context, *domain.Booking) error {
	return errors.New("disk full")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []kitchenfeed.BookingIssued
	err    error
}

func (p *recordingPublisher) PublishBookingIssued(_ context.Context, e kitchenfeed.BookingIssued) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type recordingOutcomes struct {
	mu         sync.Mutex
	outcomes   []string
	decrements []string
}

func (r *recordingOutcomes) ObserveBooking(section, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, section+":"+outcome)
}

func (r *recordingOutcomes) ObservePortionDecrement(portionKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decrements = append(r.decrements, portionKey)
}

type fixture struct {
	uc        *UseCase
	ledger    *portion.MemoryLedger
	tokens    *token.MemoryStore
	publisher *recordingPublisher
	outcomes  *recordingOutcomes
	clock     *fixedTime
}

func newFixture(t *testing.T, meals map[string]string, hour, minute int) *fixture {
	t.Helper()

	f := &fixture{
		ledger:    portion.NewMemoryLedger(),
		tokens:    token.NewMemoryStore(),
		publisher: &recordingPublisher{},
		outcomes:  &recordingOutcomes{},
		clock:     &fixedTime{now: time.Date(2026, 10, 16, hour, minute, 0, 0, kolkata)},
	}

	f.uc = NewUseCase(f.ledger, f.tokens, &stubMenu{meals: meals}, f.publisher, f.outcomes,
		txmanager.NewNoopManager(), kolkata, logger.NewNop())
	f.uc.timeProvider = f.clock
	f.uc.tokenGenerator = &sequenceTokens{}

	return f
}

func publishedMenu(counts map[string]int) map[string]string {
	meals := map[string]string{
		"VEG COMBO":     "Paneer butter masala, jeera rice, roti",
		"NON VEG COMBO": "Chicken curry, rice",
	}
	for key, n := range counts {
		meals[key] = fmt.Sprint(n)
	}
	return meals
}

func TestExecute_LastPortionThenSoldOut(t *testing.T) {
	f := newFixture(t, publishedMenu(map[string]int{domain.PortionVegCombo: 1}), 12, 0)
	ctx := context.Background()

	req := &Request{
		Date:        today,
		SectionName: domain.SectionAfternoon,
		ItemTitle:   "VEG COMBO",
		Block:       "WB-II",
		Floor:       "3rd Floor",
	}

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, "11:45 – 12:15", resp.ServiceTime)
	assert.Equal(t, int64(75), resp.Price)
	require.NotNil(t, resp.Remaining)
	assert.Equal(t, 0, *resp.Remaining)
	assert.Equal(t, f.clock.now.Add(6*time.Hour), resp.ExpiresAt)

	stored, err := f.tokens.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "WB-II", ptr.Deref(stored.Block))
	assert.Equal(t, domain.PortionVegCombo, ptr.Deref(stored.PortionKey))

	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSoldOut)
	assert.True(t, IsRejection(err))
	assert.Equal(t, MessageSoldOut, RejectionMessage(err))

	n, _, _ := f.ledger.Remaining(ctx, today, domain.PortionVegCombo)
	assert.Equal(t, 0, n)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "tok-1", f.publisher.events[0].Token)
	assert.Equal(t, []string{"Afternoon:admitted", "Afternoon:sold_out"}, f.outcomes.outcomes)
	assert.Equal(t, []string{domain.PortionVegCombo}, f.outcomes.decrements)
}

func TestExecute_NonVegComboPoolsAreIndependent(t *testing.T) {
	f := newFixture(t, publishedMenu(map[string]int{
		domain.PortionNonVegComboLunch: 1,
		domain.PortionNonVegComboNight: 1,
	}), 17, 0)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "NON VEG COMBO"})
	require.NoError(t, err)

	night, _, _ := f.ledger.Remaining(ctx, today, domain.PortionNonVegComboNight)
	assert.Equal(t, 1, night)

	resp, err := f.uc.Execute(ctx, &Request{Date: today, SectionName: domain.SectionNight, ItemTitle: "NON VEG COMBO"})
	require.NoError(t, err)
	assert.Equal(t, domain.PortionNonVegComboNight, ptr.Deref(resp.PortionKey))
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		meals   map[string]string
		hour    int
		req     Request
		wantErr error
	}{
		{
			name:    "window already closed",
			meals:   publishedMenu(map[string]int{domain.PortionVegCombo: 10}),
			hour:    15,
			req:     Request{Date: today, SectionName: domain.SectionMorning, ItemTitle: "BREAKFAST"},
			wantErr: ErrOutsideWindow,
		},
		{
			name:    "window not yet open",
			meals:   publishedMenu(nil),
			hour:    6,
			req:     Request{Date: today, SectionName: domain.SectionNight, ItemTitle: "THALI DINNER"},
			wantErr: ErrOutsideWindow,
		},
		{
			name:    "tomorrow is never bookable",
			meals:   publishedMenu(nil),
			hour:    12,
			req:     Request{Date: "2026-10-17", SectionName: domain.SectionAfternoon, ItemTitle: "THALI LUNCH"},
			wantErr: ErrOutsideWindow,
		},
		{
			name:    "no menu published",
			meals:   map[string]string{},
			hour:    12,
			req:     Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "THALI LUNCH"},
			wantErr: ErrNoMenuPublished,
		},
		{
			name:    "counter at zero",
			meals:   publishedMenu(map[string]int{domain.PortionSaladBar: 0}),
			hour:    12,
			req:     Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "SALAD BAR"},
			wantErr: ErrSoldOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.meals, tt.hour, 0)

			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsRejection(err))
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestExecute_InvalidRequests(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "missing date", req: Request{SectionName: "Afternoon", ItemTitle: "VEG COMBO"}, wantErr: ErrInvalidInput},
		{name: "bad date", req: Request{Date: "16/10/2026", SectionName: "Afternoon", ItemTitle: "VEG COMBO"}, wantErr: ErrInvalidInput},
		{name: "missing item", req: Request{Date: today, SectionName: "Afternoon"}, wantErr: ErrInvalidInput},
		{name: "unknown section", req: Request{Date: today, SectionName: "Brunch", ItemTitle: "VEG COMBO"}, wantErr: ErrUnknownSection},
		{name: "item of another section", req: Request{Date: today, SectionName: "Morning", ItemTitle: "VEG COMBO"}, wantErr: ErrItemNotFound},
		{name: "price mismatch", req: Request{Date: today, SectionName: "Afternoon", ItemTitle: "VEG COMBO", Price: ptr.Ptr(int64(70))}, wantErr: ErrPriceMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, publishedMenu(nil), 12, 0)

			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, IsRejection(err))
		})
	}
}

func TestExecute_UnlimitedItem(t *testing.T) {
	f := newFixture(t, publishedMenu(nil), 12, 0)

	resp, err := f.uc.Execute(context.Background(), &Request{
		Date:        today,
		SectionName: domain.SectionAfternoon,
		ItemTitle:   "THALI LUNCH",
		Price:       ptr.Ptr(int64(65)),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.PortionKey)
	assert.Nil(t, resp.Remaining)
	assert.Equal(t, domain.DefaultAfternoonDescriptor, resp.ServiceTime)
	assert.Empty(t, f.outcomes.decrements)
}

func TestExecute_TokenStoreFailureRevertsDecrement(t *testing.T) {
	f := newFixture(t, publishedMenu(map[string]int{domain.PortionVegCombo: 1}), 12, 0)
	f.uc.tokens = failingTokens{}
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "VEG COMBO"})
	assert.ErrorIs(t, err, ErrBookingFailed)
	assert.False(t, IsRejection(err))

	n, tracked, _ := f.ledger.Remaining(ctx, today, domain.PortionVegCombo)
	assert.True(t, tracked)
	assert.Equal(t, 1, n)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, []string{"Afternoon:failed"}, f.outcomes.outcomes)
}

func TestExecute_MenuSourceError(t *testing.T) {
	f := newFixture(t, nil, 12, 0)
	f.uc.menu = &stubMenu{err: errors.New("menu service down")}

	_, err := f.uc.Execute(context.Background(), &Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "VEG COMBO"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t, publishedMenu(nil), 12, 0)
	f.publisher.err = errors.New("broker down")

	_, err := f.uc.Execute(context.Background(), &Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "THALI LUNCH"})
	require.NoError(t, err)
	assert.Len(t, f.publisher.events, 1)
}

func TestExecute_ConcurrentRequestsNeverOversell(t *testing.T) {
	const (
		stock    = 5
		attempts = 40
	)
	f := newFixture(t, publishedMenu(map[string]int{domain.PortionVegCombo: stock}), 12, 0)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		soldOut  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, &Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "VEG COMBO"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case errors.Is(err, ErrSoldOut):
				soldOut++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, stock, admitted)
	assert.Equal(t, attempts-stock, soldOut)

	active, err := f.tokens.ListActive(ctx, f.clock.now)
	require.NoError(t, err)
	assert.Len(t, active, stock)
}

func TestExecute_DecimalCountFromMenuFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"2026-10-16": {"day": "Friday", "meals": {"VEG COMBO": "Veg biryani", "PORTION-VC": 1.0}}
	}`), 0o600))

	f := newFixture(t, nil, 12, 0)
	f.uc.menu = menuservice.NewFileSource(path)
	ctx := context.Background()

	req := &Request{Date: today, SectionName: domain.SectionAfternoon, ItemTitle: "VEG COMBO"}

	admitted := 0
	for i := 0; i < 5; i++ {
		_, err := f.uc.Execute(ctx, req)
		if err == nil {
			admitted++
			continue
		}
		assert.ErrorIs(t, err, ErrSoldOut)
	}

	assert.Equal(t, 1, admitted)
	n, tracked, err := f.ledger.Remaining(ctx, today, domain.PortionVegCombo)
	require.NoError(t, err)
	assert.True(t, tracked)
	assert.Equal(t, 0, n)
}
