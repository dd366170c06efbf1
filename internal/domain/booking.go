package domain

import "time"

// Booking represents an issued, redeemable booking token
type Booking struct {
	Token       string
	Date        string // YYYY-MM-DD
	SectionName string
	ItemTitle   string
	Price       int64
	PortionKey  *string // nil for unlimited items
	Block       *string
	Floor       *string

	CreatedAt  time.Time
	ExpiresAt  time.Time
	Consumed   bool
	ConsumedAt *time.Time
}

// IsExpired returns true if the token validity has passed
func (b *Booking) IsExpired(now time.Time) bool {
	return !b.ExpiresAt.After(now)
}

// IsActive returns true if the token is unused and not expired
func (b *Booking) IsActive(now time.Time) bool {
	return !b.Consumed && !b.IsExpired(now)
}

// Location user workplace used to resolve location-dependent sections
type Location struct {
	Block string
	Floor string
}
