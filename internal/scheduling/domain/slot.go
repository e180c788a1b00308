package domain

import (
	"fmt"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// Slot is a candidate or chosen placement: an absolute start minute since
// midnight and a duration in minutes.
type Slot struct {
	startMinute int
	duration    int
}

// NewSlot creates a slot that lies within a single day.
func NewSlot(startMinute, durationMin int) (Slot, error) {
	if durationMin <= 0 {
		return Slot{}, sharedDomain.NewValidationError("duration", "must be positive", durationMin)
	}
	if startMinute < 0 || startMinute+durationMin > MinutesPerDay {
		return Slot{}, sharedDomain.NewValidationError("start_minute", "slot must fit inside the day", startMinute)
	}
	return Slot{startMinute: startMinute, duration: durationMin}, nil
}

func (s Slot) StartMinute() int { return s.startMinute }
func (s Slot) DurationMin() int { return s.duration }

// EndMinute returns the exclusive end of the slot in minutes since midnight.
func (s Slot) EndMinute() int {
	return s.startMinute + s.duration
}

// StartTime returns the slot start as a clock time.
func (s Slot) StartTime() ClockTime {
	return ClockTime{hours: s.startMinute / 60, minutes: s.startMinute % 60}
}

// EndTime returns the slot end as a clock time.
func (s Slot) EndTime() ClockTime {
	end := s.EndMinute()
	return ClockTime{hours: end / 60, minutes: end % 60}
}

// OverlapsWith reports whether the slot intersects [startMinute, endMinute).
func (s Slot) OverlapsWith(startMinute, endMinute int) bool {
	return s.startMinute < endMinute && s.EndMinute() > startMinute
}

// String formats the slot as HH:MM-HH:MM.
func (s Slot) String() string {
	return fmt.Sprintf("%s-%s", s.StartTime(), s.EndTime())
}
