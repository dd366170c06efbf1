package schedule

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// Block names with their own lunch slots
const (
	BlockWBII = "WB-II"
	BlockEBII = "EB-II"
	BlockWBIV = "WB-IV"
)

var floorDigits = regexp.MustCompile(`\d+`)

// ResolveAfternoonWindow returns the lunch time descriptor for a workplace
func ResolveAfternoonWindow(block, floor string) string {
	block = strings.TrimSpace(block)
	floor = strings.TrimSpace(floor)
	if block == "" || floor == "" {
		return domain.DefaultAfternoonDescriptor
	}

	switch block {
	case BlockWBII:
		n, ok := FloorNumber(floor)
		if !ok {
			return domain.DefaultAfternoonDescriptor
		}
		switch {
		case n >= 1 && n <= 4:
			return "11:45 – 12:15"
		case n >= 5 && n <= 8:
			return "12:45 – 1:15"
		}
	case BlockEBII:
		return "12:15 – 12:45"
	case BlockWBIV:
		return "11:45 – 1:15"
	}

	return domain.DefaultAfternoonDescriptor
}

// FloorNumber extracts the first run of digits of a floor label
// ("3rd Floor" -> 3). Labels without digits ("Grd Floor") are not numeric.
func FloorNumber(label string) (int, bool) {
	digits := floorDigits.FindString(label)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// EffectiveDescriptor returns the time descriptor of a section for a location.
// Only the Afternoon section depends on the location.
func EffectiveDescriptor(section *domain.MenuSection, loc domain.Location) string {
	if section.IsLocationVariable() {
		return ResolveAfternoonWindow(loc.Block, loc.Floor)
	}
	return section.Time
}
