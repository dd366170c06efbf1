package models

// RemainingResponse остаток порций по ключу на дату
type RemainingResponse struct {
	Date       string `json:"date"`
	PortionKey string `json:"portionKey"`
	Tracked    bool   `json:"tracked"`
	Remaining  *int   `json:"remaining,omitempty"` // nil, если счетчик не ведется
}
