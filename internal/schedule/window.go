package schedule

import (
	"time"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// Window booking window of a section on a given day
type Window struct {
	Start time.Time // resolved service start
	Open  time.Time
	Close time.Time
}

// ResolveWindow computes the booking window of a time descriptor
// anchored to referenceDate
func ResolveWindow(descriptor string, referenceDate time.Time) (Window, error) {
	start, err := AnchorStartTime(descriptor, referenceDate)
	if err != nil {
		return Window{}, err
	}

	return Window{
		Start: start,
		Open:  start.Add(-domain.WindowOpensBefore),
		Close: start.Add(domain.WindowClosesAfter),
	}, nil
}

// Contains returns true if now is within [Open, Close]
func (w Window) Contains(now time.Time) bool {
	return !now.Before(w.Open) && !now.After(w.Close)
}

// IsEligible returns true if a booking for referenceDate may be placed at now.
// Bookings for past or future days are never eligible.
func (w Window) IsEligible(referenceDate, now time.Time) bool {
	return IsSameDay(referenceDate, now) && w.Contains(now)
}

// IsSameDay compares calendar days in a's location
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
