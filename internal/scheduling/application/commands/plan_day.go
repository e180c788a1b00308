package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/felixgeelhaar/dayplan/internal/preference"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/google/uuid"
)

// ReasonNoFreeSlot is reported for pending tasks that fit nowhere.
const ReasonNoFreeSlot = "no free slot long enough"

// PlanDayCommand contains the data needed to plan a day.
type PlanDayCommand struct {
	Window    domain.Window
	Committed []services.TaskInput
	Pending   []services.TaskInput
	Seed      *uint64 // nil draws a random seed
}

// CommandName implements application.Command.
func (PlanDayCommand) CommandName() string { return "plan_day" }

// PlanDayResult contains the outcome of planning a day.
type PlanDayResult struct {
	Results          []TaskPlanResult
	PlacedCount      int
	SkippedCount     int
	CommittedMinutes int
	PlannedMinutes   int
	UtilizationPct   float64
}

// TaskPlanResult contains the result for a single pending task.
type TaskPlanResult struct {
	TaskID      uuid.UUID
	Name        string
	Category    string
	DurationMin int
	Scheduled   bool
	Start       string
	End         string
	Reason      string
}

var _ sharedApplication.CommandHandler[PlanDayCommand, *PlanDayResult] = (*PlanDayHandler)(nil)

// PlanDayHandler handles the PlanDayCommand.
type PlanDayHandler struct {
	estimator preference.Estimator
	config    services.SchedulerConfig
	logger    *slog.Logger
	metrics   observability.Metrics
}

// NewPlanDayHandler creates a new PlanDayHandler.
func NewPlanDayHandler(
	estimator preference.Estimator,
	config services.SchedulerConfig,
	logger *slog.Logger,
	metrics observability.Metrics,
) *PlanDayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanDayHandler{
		estimator: estimator,
		config:    config,
		logger:    logger,
		metrics:   metrics,
	}
}

// Handle executes the PlanDayCommand. Pending tasks are reported in the order
// they were given.
func (h *PlanDayHandler) Handle(ctx context.Context, cmd PlanDayCommand) (*PlanDayResult, error) {
	schedule, err := services.BuildSchedule(cmd.Window, cmd.Committed)
	if err != nil {
		return nil, fmt.Errorf("committed tasks: %w", err)
	}

	pending, err := services.ToTasks(cmd.Pending)
	if err != nil {
		return nil, fmt.Errorf("pending tasks: %w", err)
	}

	var rng *rand.Rand
	if cmd.Seed != nil {
		rng = services.NewSeededRand(*cmd.Seed)
	}

	scheduler, err := services.NewProbabilisticScheduler(schedule, h.estimator, rng, h.config, h.logger, h.metrics)
	if err != nil {
		return nil, err
	}

	assignments, err := scheduler.PlanSlots(ctx, pending)
	if err != nil {
		return nil, err
	}

	placed := make(map[uuid.UUID]services.Assignment, len(assignments))
	for _, a := range assignments {
		placed[a.Task.ID()] = a
	}

	result := &PlanDayResult{
		Results:          make([]TaskPlanResult, 0, len(pending)),
		CommittedMinutes: schedule.TotalScheduledMinutes(),
	}
	for _, task := range pending {
		item := TaskPlanResult{
			TaskID:      task.ID(),
			Name:        task.Name(),
			Category:    task.Category(),
			DurationMin: task.DurationMin(),
		}
		if a, ok := placed[task.ID()]; ok {
			item.Scheduled = true
			item.Start = a.Slot.StartTime().String()
			item.End = a.Slot.EndTime().String()
			result.PlacedCount++
			result.PlannedMinutes += task.DurationMin()
		} else {
			item.Reason = ReasonNoFreeSlot
			result.SkippedCount++
		}
		result.Results = append(result.Results, item)
	}

	if length := cmd.Window.LengthMinutes(); length > 0 {
		result.UtilizationPct = float64(result.CommittedMinutes+result.PlannedMinutes) / float64(length) * 100
	}

	h.logger.InfoContext(ctx, "day planned",
		slog.String("window", cmd.Window.String()),
		slog.Int("placed", result.PlacedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Float64("utilization_pct", result.UtilizationPct),
	)

	return result, nil
}
