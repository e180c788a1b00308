package queries

import (
	"context"

	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
)

// FreeBlockDTO is a data transfer object for a free block.
type FreeBlockDTO struct {
	Start       string
	End         string
	DurationMin int
}

// FindFreeBlocksQuery contains the parameters for finding free blocks.
type FindFreeBlocksQuery struct {
	Window      domain.Window
	Committed   []services.TaskInput
	MinDuration int // blocks shorter than this are left out
}

// QueryName implements application.Query.
func (FindFreeBlocksQuery) QueryName() string { return "find_free_blocks" }

var _ sharedApplication.QueryHandler[FindFreeBlocksQuery, []FreeBlockDTO] = (*FindFreeBlocksHandler)(nil)

// FindFreeBlocksHandler handles the FindFreeBlocksQuery.
type FindFreeBlocksHandler struct{}

// NewFindFreeBlocksHandler creates a new FindFreeBlocksHandler.
func NewFindFreeBlocksHandler() *FindFreeBlocksHandler {
	return &FindFreeBlocksHandler{}
}

// Handle executes the FindFreeBlocksQuery.
func (h *FindFreeBlocksHandler) Handle(_ context.Context, query FindFreeBlocksQuery) ([]FreeBlockDTO, error) {
	schedule, err := services.BuildSchedule(query.Window, query.Committed)
	if err != nil {
		return nil, err
	}

	blocks, err := schedule.FreeBlocks()
	if err != nil {
		return nil, err
	}

	offset := query.Window.StartMinute()
	dtos := make([]FreeBlockDTO, 0, len(blocks))
	for _, b := range blocks {
		if b.Duration() < query.MinDuration {
			continue
		}
		start, err := domain.ClockTimeFromMinutes(offset + b.StartMin())
		if err != nil {
			return nil, err
		}
		end, err := domain.ClockTimeFromMinutes(offset + b.EndMin())
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, FreeBlockDTO{
			Start:       start.String(),
			End:         end.String(),
			DurationMin: b.Duration(),
		})
	}

	return dtos, nil
}
