package domain

import (
	"fmt"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// DefaultSlotStep is the default distance in minutes between consecutive
// candidate slot starts.
const DefaultSlotStep = 15

// Schedule holds the committed tasks of one scheduling window.
type Schedule struct {
	window Window
	tasks  []Task
}

// NewSchedule creates a schedule from already committed tasks. Every task
// must carry a start time and the set must be consistent with the window.
func NewSchedule(window Window, committed ...Task) (*Schedule, error) {
	s := &Schedule{
		window: window,
		tasks:  make([]Task, 0, len(committed)),
	}
	for _, t := range committed {
		if err := s.AddTask(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Window returns the scheduling window.
func (s *Schedule) Window() Window { return s.window }

// Tasks returns a copy of the committed tasks in insertion order.
func (s *Schedule) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of committed tasks.
func (s *Schedule) Len() int { return len(s.tasks) }

// AddTask commits a task. The task must have a start time and fit inside a
// single free block of the current schedule.
func (s *Schedule) AddTask(task Task) error {
	if !task.IsCommitted() {
		return fmt.Errorf("cannot commit task %q without a start time: %w", task.Name(), sharedDomain.ErrInvalidArgument)
	}
	candidate := append(s.Tasks(), task)
	if _, err := FreeBlocks(s.window, candidate); err != nil {
		return err
	}
	s.tasks = candidate
	return nil
}

// FreeBlocks returns the free intervals left in the window.
func (s *Schedule) FreeBlocks() ([]TimeBlock, error) {
	return FreeBlocks(s.window, s.tasks)
}

// ProposeSlots enumerates every slot of durationMin that fits in the free
// time, stepping by stepMin.
func (s *Schedule) ProposeSlots(durationMin, stepMin int) ([]Slot, error) {
	blocks, err := s.FreeBlocks()
	if err != nil {
		return nil, err
	}
	return EnumerateSlots(s.window, blocks, durationMin, stepMin)
}

// Clone returns an independent copy. Changes to the clone never reach the
// original schedule.
func (s *Schedule) Clone() *Schedule {
	return &Schedule{
		window: s.window,
		tasks:  s.Tasks(),
	}
}

// TotalScheduledMinutes returns the committed time.
func (s *Schedule) TotalScheduledMinutes() int {
	total := 0
	for _, t := range s.tasks {
		total += t.DurationMin()
	}
	return total
}

// Utilization returns the committed share of the window as a percentage.
func (s *Schedule) Utilization() float64 {
	length := s.window.LengthMinutes()
	if length == 0 {
		return 0
	}
	return float64(s.TotalScheduledMinutes()) / float64(length) * 100
}
