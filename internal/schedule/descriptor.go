package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// clockPattern "H:MM" with an optional meridiem marker right after it
var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})(?:\s*([AaPp])\.?\s*[Mm]\.?)?`)

// pmInferenceHour hours below this without any meridiem marker are afternoon hours
const pmInferenceHour = 7

type clock struct {
	hour     int
	minute   int
	meridiem byte // 'A', 'P' or 0
}

// ParseStartTime resolves the first time of a descriptor to hours and minutes
// on a 24-hour clock.
//
// Meridiem resolution order:
//  1. a marker attached to the start time ("11:45 AM – 2:00 PM");
//  2. a trailing marker of the range ("8:15 – 9:00 PM"), flipped when the
//     range crosses noon ("11:00 – 1:00 PM");
//  3. no marker at all: hours below 7 are PM ("12:45 – 1:15", "1:15").
func ParseStartTime(descriptor string) (hour, minute int, err error) {
	matches := clockPattern.FindAllStringSubmatch(descriptor, -1)
	if len(matches) == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedTimeDescriptor, descriptor)
	}

	clocks := make([]clock, 0, len(matches))
	for _, m := range matches {
		c, err := parseClock(m)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q: %v", ErrMalformedTimeDescriptor, descriptor, err)
		}
		clocks = append(clocks, c)
	}

	start := clocks[0]

	switch {
	case start.meridiem != 0:
		return to24(start.hour, start.meridiem), start.minute, nil

	case len(clocks) > 1 && clocks[len(clocks)-1].meridiem != 0:
		end := clocks[len(clocks)-1]
		marker := end.meridiem
		if start.hour%12 > end.hour%12 {
			marker = opposite(marker)
		}
		return to24(start.hour, marker), start.minute, nil

	default:
		if start.hour < pmInferenceHour {
			return start.hour + 12, start.minute, nil
		}
		return start.hour, start.minute, nil
	}
}

func parseClock(m []string) (clock, error) {
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return clock{}, err
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return clock{}, err
	}
	if minute > 59 {
		return clock{}, fmt.Errorf("minute %d out of range", minute)
	}

	var meridiem byte
	if m[3] != "" {
		meridiem = strings.ToUpper(m[3])[0]
		if hour < 1 || hour > 12 {
			return clock{}, fmt.Errorf("hour %d out of range for 12-hour clock", hour)
		}
	} else if hour > 23 {
		return clock{}, fmt.Errorf("hour %d out of range", hour)
	}

	return clock{hour: hour, minute: minute, meridiem: meridiem}, nil
}

func to24(hour int, meridiem byte) int {
	if meridiem == 'P' {
		return hour%12 + 12
	}
	return hour % 12
}

func opposite(meridiem byte) byte {
	if meridiem == 'P' {
		return 'A'
	}
	return 'P'
}

// AnchorStartTime places the descriptor's start time on referenceDate's
// calendar day in referenceDate's location
func AnchorStartTime(descriptor string, referenceDate time.Time) (time.Time, error) {
	hour, minute, err := ParseStartTime(descriptor)
	if err != nil {
		return time.Time{}, err
	}

	y, mo, d := referenceDate.Date()
	return time.Date(y, mo, d, hour, minute, 0, 0, referenceDate.Location()), nil
}
