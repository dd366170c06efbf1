package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// MenuItem represents a bookable item of a section
type MenuItem struct {
	Title      string
	Price      int64  // minor currency units
	Time       string // optional nominal serving time
	PortionKey string // empty = unlimited
}

// IsLimited returns true if the item draws from a portion counter
func (i *MenuItem) IsLimited() bool {
	return i.PortionKey != ""
}

// MenuSection represents a meal period of the daily schedule
type MenuSection struct {
	Name  string
	Time  string // nominal time descriptor
	Items []MenuItem
}

// FindItem returns the item with the given title
func (s *MenuSection) FindItem(title string) (*MenuItem, bool) {
	for i := range s.Items {
		if s.Items[i].Title == title {
			return &s.Items[i], true
		}
	}
	return nil, false
}

// IsLocationVariable returns true if the section time depends on block/floor
func (s *MenuSection) IsLocationVariable() bool {
	return s.Name == SectionAfternoon
}

// DayMenu menu snapshot for one calendar day.
// Meals maps a menu label or portion key to a description or a numeric count.
type DayMenu struct {
	Date  string
	Day   string
	Meals map[string]string
}

// IsPublished returns false when the day has no entries
func (m *DayMenu) IsPublished() bool {
	return m != nil && len(m.Meals) > 0
}

// Description returns the menu text for an item label
func (m *DayMenu) Description(title string) string {
	if m == nil {
		return NoMenuText
	}
	if text, ok := m.Meals[title]; ok {
		return text
	}
	return NoMenuText
}

// IsPastDate reports whether date (YYYY-MM-DD) is before the calendar day of now.
// Counters of past days are read-only and never seeded.
func IsPastDate(date string, now time.Time) bool {
	return date < now.Format(DateFormat)
}

// PortionCounts extracts initial counters for every known portion key.
// Numbers may be written as "20", "20.0" or "2e1"; values that are not whole
// finite numbers are skipped, negative values clamp to 0.
func (m *DayMenu) PortionCounts() map[string]int {
	counts := make(map[string]int)
	if m == nil {
		return counts
	}

	for _, key := range PortionKeys() {
		raw, ok := m.Meals[key]
		if !ok {
			continue
		}
		n, ok := parseCount(raw)
		if !ok {
			continue
		}
		counts[key] = n
	}

	return counts
}

func parseCount(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	return int(f), true
}
