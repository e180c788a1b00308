package domain

import (
	"fmt"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// TimeBlock is a free half-open interval [startMin, endMin) expressed in
// minutes relative to the window start.
type TimeBlock struct {
	startMin int
	endMin   int
}

// NewTimeBlock creates a time block. The block must not be empty.
func NewTimeBlock(startMin, endMin int) (TimeBlock, error) {
	if endMin <= startMin {
		return TimeBlock{}, sharedDomain.NewValidationError("end_min", fmt.Sprintf("must be after %d", startMin), endMin)
	}
	return TimeBlock{startMin: startMin, endMin: endMin}, nil
}

func (b TimeBlock) StartMin() int { return b.startMin }
func (b TimeBlock) EndMin() int   { return b.endMin }

// Duration returns the block length in minutes.
func (b TimeBlock) Duration() int {
	return b.endMin - b.startMin
}

// ContainsInterval reports whether [startMin, endMin) lies inside the block.
func (b TimeBlock) ContainsInterval(startMin, endMin int) bool {
	return startMin >= b.startMin && endMin <= b.endMin
}

// OverlapsInterval reports whether [startMin, endMin) shares any minute with the block.
func (b TimeBlock) OverlapsInterval(startMin, endMin int) bool {
	return startMin < b.endMin && endMin > b.startMin
}

// split removes [startMin, endMin) from the block and returns the non-empty
// remainders in ascending order. The interval must be contained in the block.
func (b TimeBlock) split(startMin, endMin int) []TimeBlock {
	remainders := make([]TimeBlock, 0, 2)
	if startMin > b.startMin {
		remainders = append(remainders, TimeBlock{startMin: b.startMin, endMin: startMin})
	}
	if endMin < b.endMin {
		remainders = append(remainders, TimeBlock{startMin: endMin, endMin: b.endMin})
	}
	return remainders
}

// String formats the block as [start, end).
func (b TimeBlock) String() string {
	return fmt.Sprintf("[%d, %d)", b.startMin, b.endMin)
}
