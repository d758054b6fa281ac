package hastus

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a TransitMaster clock time (no date attached).
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime builds a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// Minutes returns the minutes since midnight.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseClockTime parses a TransitMaster time such as "0123a" (1:23 AM),
// "1055p" (10:55 PM) or "1235x" (12:35 AM, after midnight). Hours use a
// 12-hour clock, so "1200a" and "1200x" are both midnight.
func ParseClockTime(field string) (ClockTime, error) {
	trimmed := strings.TrimSpace(field)
	if len(trimmed) != 5 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", field)
	}

	hour, err := strconv.Atoi(trimmed[0:2])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", field)
	}
	minute, err := strconv.Atoi(trimmed[2:4])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", field)
	}
	if hour > 12 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q", field)
	}

	switch trimmed[4] {
	case 'a', 'x':
		hour = hour % 12
	case 'p':
		hour = hour%12 + 12
	default:
		return ClockTime{}, fmt.Errorf("invalid clock time suffix %q", field)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}
