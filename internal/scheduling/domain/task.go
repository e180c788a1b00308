package domain

import (
	"strings"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/google/uuid"
)

// Task is a unit of work to be placed on the day. A task without a start
// time is unscheduled; one with a start time is committed and occupies
// [start, start+duration) on the schedule.
type Task struct {
	id       uuid.UUID
	name     string
	category string
	duration int // minutes
	start    *ClockTime
}

// NewTask creates an unscheduled task.
func NewTask(name, category string, durationMin int) (Task, error) {
	if strings.TrimSpace(name) == "" {
		return Task{}, sharedDomain.NewValidationError("name", "must not be empty", nil)
	}
	if durationMin <= 0 {
		return Task{}, sharedDomain.NewValidationError("duration", "must be positive", durationMin)
	}
	return Task{
		id:       uuid.New(),
		name:     name,
		category: category,
		duration: durationMin,
	}, nil
}

// NewCommittedTask creates a task that is already placed at start.
func NewCommittedTask(name, category string, durationMin int, start ClockTime) (Task, error) {
	t, err := NewTask(name, category, durationMin)
	if err != nil {
		return Task{}, err
	}
	return t.ScheduledAt(start), nil
}

func (t Task) ID() uuid.UUID     { return t.id }
func (t Task) Name() string      { return t.name }
func (t Task) Category() string  { return t.category }
func (t Task) DurationMin() int  { return t.duration }
func (t Task) IsCommitted() bool { return t.start != nil }

// Start returns the committed start time, if any.
func (t Task) Start() (ClockTime, bool) {
	if t.start == nil {
		return ClockTime{}, false
	}
	return *t.start, true
}

// StartMinute returns the committed start in minutes since midnight.
func (t Task) StartMinute() (int, bool) {
	if t.start == nil {
		return 0, false
	}
	return t.start.MinutesSinceMidnight(), true
}

// ScheduledAt returns a copy of the task committed at start. The receiver is
// left unchanged.
func (t Task) ScheduledAt(start ClockTime) Task {
	stamped := start
	t.start = &stamped
	return t
}

// Unscheduled returns a copy of the task without a start time.
func (t Task) Unscheduled() Task {
	t.start = nil
	return t
}
