package domain

import (
	"fmt"
	"sort"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// FreeBlocks returns the free intervals of window that remain after removing
// every committed task. Blocks are relative to the window start, ascending
// and pairwise disjoint.
//
// Tasks are carved out in input order. Each task must fall entirely inside a
// single block that is still free; a task that overlaps another committed
// task, straddles two free blocks or leaves the window is rejected with
// ErrInconsistentSchedule.
func FreeBlocks(window Window, committed []Task) ([]TimeBlock, error) {
	blocks := []TimeBlock{{startMin: 0, endMin: window.LengthMinutes()}}

	for _, task := range committed {
		start, ok := task.StartMinute()
		if !ok {
			return nil, fmt.Errorf("task %q has no start time: %w", task.Name(), sharedDomain.ErrInvalidArgument)
		}
		sm := start - window.StartMinute()
		em := sm + task.DurationMin()

		idx := -1
		for i, b := range blocks {
			if b.ContainsInterval(sm, em) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("task %q at %s for %d min does not fit a free block of %s: %w",
				task.Name(), ClockTime{hours: start / 60, minutes: start % 60}, task.DurationMin(), window,
				sharedDomain.ErrInconsistentSchedule)
		}

		remainders := blocks[idx].split(sm, em)
		next := make([]TimeBlock, 0, len(blocks)+1)
		next = append(next, blocks[:idx]...)
		next = append(next, blocks[idx+1:]...)
		next = append(next, remainders...)
		sort.Slice(next, func(i, j int) bool {
			return next[i].startMin < next[j].startMin
		})
		blocks = next
	}

	return blocks, nil
}

// EnumerateSlots slides a durationMin-long window across every free block in
// increments of stepMin and returns the resulting candidate slots in absolute
// minutes since midnight. Slots from one block may overlap each other.
func EnumerateSlots(window Window, blocks []TimeBlock, durationMin, stepMin int) ([]Slot, error) {
	if durationMin <= 0 {
		return nil, sharedDomain.NewValidationError("duration", "must be positive", durationMin)
	}
	if stepMin <= 0 {
		return nil, sharedDomain.NewValidationError("step", "must be positive", stepMin)
	}

	offset := window.StartMinute()
	slots := make([]Slot, 0)
	for _, b := range blocks {
		if b.Duration() < durationMin {
			continue
		}
		for sm := b.startMin; sm+durationMin <= b.endMin; sm += stepMin {
			slots = append(slots, Slot{startMinute: sm + offset, duration: durationMin})
		}
	}
	return slots, nil
}
