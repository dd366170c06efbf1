package schedule

import "errors"

var (
	// ErrMalformedTimeDescriptor возвращается, когда в описании времени нет "H:MM"
	ErrMalformedTimeDescriptor = errors.New("schedule: malformed time descriptor")
)
