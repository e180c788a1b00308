package domain

import (
	"fmt"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// Window is the hour range inside which tasks may be placed for one run.
type Window struct {
	startHour int
	endHour   int
}

// NewWindow creates a scheduling window. The range must be non-empty and
// fit inside a single day.
func NewWindow(startHour, endHour int) (Window, error) {
	if startHour < 0 || startHour > 23 {
		return Window{}, sharedDomain.NewValidationError("start_hour", "must be between 0 and 23", startHour)
	}
	if endHour <= startHour || endHour > 24 {
		return Window{}, sharedDomain.NewValidationError("end_hour", fmt.Sprintf("must be between %d and 24", startHour+1), endHour)
	}
	return Window{startHour: startHour, endHour: endHour}, nil
}

func (w Window) StartHour() int { return w.startHour }
func (w Window) EndHour() int   { return w.endHour }

// StartMinute returns the window start in minutes since midnight.
func (w Window) StartMinute() int { return w.startHour * 60 }

// EndMinute returns the window end in minutes since midnight.
func (w Window) EndMinute() int { return w.endHour * 60 }

// LengthMinutes returns the window length.
func (w Window) LengthMinutes() int { return w.EndMinute() - w.StartMinute() }

// ContainsSlot reports whether the slot lies entirely inside the window.
func (w Window) ContainsSlot(s Slot) bool {
	return s.StartMinute() >= w.StartMinute() && s.EndMinute() <= w.EndMinute()
}

// String formats the window as HH:MM-HH:MM.
func (w Window) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.startHour, w.endHour)
}
