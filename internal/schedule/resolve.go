package schedule

import (
	"fmt"
	"time"
)

const (
	// DateLayout matches the HTML date input format.
	DateLayout = "2006-01-02"
	// ClockLayout matches the HTML time input format.
	ClockLayout = "15:04"
)

// Resolve combines a calendar day and a 24h clock value, interpreted in
// loc, into a start instant and an end instant minutes later. Crossing
// midnight, month or year boundaries is handled by time package
// arithmetic.
func Resolve(date, clock string, minutes int, loc *time.Location) (start, end time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	if minutes < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("resolve: duration must be at least 1 minute, got %d", minutes)
	}

	start, err = time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("resolve: %w", err)
	}

	end = start.Add(time.Duration(minutes) * time.Minute)
	return start, end, nil
}

// DurationBetween derives whole minutes between two instants, rounded to
// the nearest minute. Non-positive spans indicate a malformed stored
// event; the result is clamped to 0 so callers can substitute a display
// default instead of failing.
func DurationBetween(start, end time.Time) int {
	minutes := int(end.Sub(start).Round(time.Minute) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}
