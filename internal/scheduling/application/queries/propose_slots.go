package queries

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/dayplan/internal/preference"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
)

// SlotProbabilityDTO is a data transfer object for a candidate slot.
type SlotProbabilityDTO struct {
	Start       string
	End         string
	Probability float64
}

// ProposeSlotsQuery contains the parameters for proposing slots.
type ProposeSlotsQuery struct {
	Window    domain.Window
	Committed []services.TaskInput
	Task      services.TaskInput
	SlotStep  int // zero uses the handler's configured step
}

// QueryName implements application.Query.
func (ProposeSlotsQuery) QueryName() string { return "propose_slots" }

var _ sharedApplication.QueryHandler[ProposeSlotsQuery, []SlotProbabilityDTO] = (*ProposeSlotsHandler)(nil)

// ProposeSlotsHandler handles the ProposeSlotsQuery.
type ProposeSlotsHandler struct {
	estimator preference.Estimator
	config    services.SchedulerConfig
	logger    *slog.Logger
}

// NewProposeSlotsHandler creates a new ProposeSlotsHandler.
func NewProposeSlotsHandler(estimator preference.Estimator, config services.SchedulerConfig, logger *slog.Logger) *ProposeSlotsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProposeSlotsHandler{estimator: estimator, config: config, logger: logger}
}

// Handle executes the ProposeSlotsQuery. The task's start, if any, is ignored.
func (h *ProposeSlotsHandler) Handle(ctx context.Context, query ProposeSlotsQuery) ([]SlotProbabilityDTO, error) {
	schedule, err := services.BuildSchedule(query.Window, query.Committed)
	if err != nil {
		return nil, err
	}

	input := query.Task
	input.Start = ""
	task, err := input.ToTask()
	if err != nil {
		return nil, err
	}

	config := h.config
	if query.SlotStep > 0 {
		config.SlotStep = query.SlotStep
	}

	scheduler, err := services.NewProbabilisticScheduler(schedule, h.estimator, nil, config, h.logger, nil)
	if err != nil {
		return nil, err
	}

	proposals, err := scheduler.ProposeSlots(ctx, task)
	if err != nil {
		return nil, err
	}

	dtos := make([]SlotProbabilityDTO, len(proposals))
	for i, p := range proposals {
		dtos[i] = SlotProbabilityDTO{
			Start:       p.Slot.StartTime().String(),
			End:         p.Slot.EndTime().String(),
			Probability: p.Probability,
		}
	}

	return dtos, nil
}
