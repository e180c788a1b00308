package domain

import (
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// MinutesPerDay is the number of minutes between two midnights.
const MinutesPerDay = 24 * 60

// ClockTime is a wall-clock time of day with minute precision.
// 24:00 is accepted and denotes the end of the day.
type ClockTime struct {
	hours   int
	minutes int
}

// NewClockTime creates a clock time from hours and minutes.
func NewClockTime(hours, minutes int) (ClockTime, error) {
	if hours < 0 || hours > 24 {
		return ClockTime{}, sharedDomain.NewValidationError("hours", "must be between 0 and 24", hours)
	}
	if minutes < 0 || minutes > 59 {
		return ClockTime{}, sharedDomain.NewValidationError("minutes", "must be between 0 and 59", minutes)
	}
	if hours == 24 && minutes != 0 {
		return ClockTime{}, sharedDomain.NewValidationError("minutes", "must be 0 at 24:00", minutes)
	}
	return ClockTime{hours: hours, minutes: minutes}, nil
}

// MustClockTime is like NewClockTime but panics on invalid input.
// Intended for literals in tests and static priors.
func MustClockTime(hours, minutes int) ClockTime {
	ct, err := NewClockTime(hours, minutes)
	if err != nil {
		panic(err)
	}
	return ct
}

// ClockTimeFromMinutes converts minutes since midnight into a clock time.
func ClockTimeFromMinutes(minutes int) (ClockTime, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return ClockTime{}, sharedDomain.NewValidationError("minutes", "must be within a day", minutes)
	}
	return ClockTime{hours: minutes / 60, minutes: minutes % 60}, nil
}

// ParseClockTime parses an "HH:MM" string. "24:00" denotes the end of the
// day; any trailing text is rejected.
func ParseClockTime(s string) (ClockTime, error) {
	if s == "24:00" {
		return ClockTime{hours: 24}, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, sharedDomain.NewValidationError("time", "must use HH:MM format", s)
	}
	return NewClockTime(t.Hour(), t.Minute())
}

func (c ClockTime) Hours() int   { return c.hours }
func (c ClockTime) Minutes() int { return c.minutes }

// MinutesSinceMidnight returns the absolute minute of the day.
func (c ClockTime) MinutesSinceMidnight() int {
	return c.hours*60 + c.minutes
}

// Before reports whether c is earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.MinutesSinceMidnight() < other.MinutesSinceMidnight()
}

// String formats the time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.hours, c.minutes)
}
