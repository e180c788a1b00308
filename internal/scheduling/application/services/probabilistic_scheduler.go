package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/felixgeelhaar/dayplan/internal/preference"
	schedulingDomain "github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
)

var (
	ErrNilSchedule  = errors.New("schedule is required")
	ErrNilEstimator = errors.New("estimator is required")
)

// SchedulerConfig contains configuration for the probabilistic scheduler.
type SchedulerConfig struct {
	SlotStep    int // minutes between consecutive candidate starts
	SampleCount int // multinomial trials per choice
}

// DefaultSchedulerConfig returns a 15 minute step and a single draw.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		SlotStep:    schedulingDomain.DefaultSlotStep,
		SampleCount: 1,
	}
}

// Validate checks the configuration.
func (c SchedulerConfig) Validate() error {
	if c.SlotStep <= 0 {
		return sharedDomain.NewValidationError("slot_step", "must be positive", c.SlotStep)
	}
	if c.SampleCount <= 0 {
		return sharedDomain.NewValidationError("sample_count", "must be positive", c.SampleCount)
	}
	return nil
}

// SlotProbability is a candidate slot with its selection probability.
type SlotProbability struct {
	Probability float64
	Slot        schedulingDomain.Slot
}

// Assignment pairs a task, stamped with its planned start, with its slot.
type Assignment struct {
	Task schedulingDomain.Task
	Slot schedulingDomain.Slot
}

// ProbabilisticScheduler places tasks into free time by sampling candidate
// slots in proportion to how well they match the task's time-of-day
// preference.
//
// Planning never mutates the schedule it was built with: batch planning
// works on a private copy. The scheduler is safe for concurrent use as long
// as callers do not modify the schedule while a call is in flight.
type ProbabilisticScheduler struct {
	schedule  *schedulingDomain.Schedule
	estimator preference.Estimator
	config    SchedulerConfig
	logger    *slog.Logger
	metrics   observability.Metrics

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewProbabilisticScheduler creates a scheduler over schedule. A nil rng is
// replaced with a randomly seeded source; pass NewSeededRand for
// reproducible results.
func NewProbabilisticScheduler(
	schedule *schedulingDomain.Schedule,
	estimator preference.Estimator,
	rng *rand.Rand,
	config SchedulerConfig,
	logger *slog.Logger,
	metrics observability.Metrics,
) (*ProbabilisticScheduler, error) {
	if schedule == nil {
		return nil, ErrNilSchedule
	}
	if estimator == nil {
		return nil, ErrNilEstimator
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = newRandomRand()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ProbabilisticScheduler{
		schedule:  schedule,
		estimator: estimator,
		config:    config,
		logger:    logger,
		metrics:   metrics,
		rng:       rng,
	}, nil
}

// Tasks returns the committed tasks of the underlying schedule.
func (s *ProbabilisticScheduler) Tasks() []schedulingDomain.Task {
	return s.schedule.Tasks()
}

// ProposeSlots returns every candidate slot for task with its probability.
// Probabilities are strictly positive and sum to one. An empty result means
// the task fits nowhere.
func (s *ProbabilisticScheduler) ProposeSlots(ctx context.Context, task schedulingDomain.Task) ([]SlotProbability, error) {
	return s.proposeOn(ctx, s.schedule, task)
}

// ChooseSlot samples one slot for task. It returns nil when no slot fits.
//
// With SampleCount > 1 the slot drawn most often wins, ties going to the
// earliest candidate.
func (s *ProbabilisticScheduler) ChooseSlot(ctx context.Context, task schedulingDomain.Task) (*schedulingDomain.Slot, error) {
	return s.chooseOn(ctx, s.schedule, task)
}

// ChooseSlots plans tasks as a batch and returns the chosen slots. See PlanSlots.
func (s *ProbabilisticScheduler) ChooseSlots(ctx context.Context, tasks []schedulingDomain.Task) ([]schedulingDomain.Slot, error) {
	assignments, err := s.PlanSlots(ctx, tasks)
	if err != nil {
		return nil, err
	}
	slots := make([]schedulingDomain.Slot, len(assignments))
	for i, a := range assignments {
		slots[i] = a.Slot
	}
	return slots, nil
}

// PlanSlots places tasks one after another, longest first; equal durations
// keep their input order. Each placement becomes busy time for the tasks
// that follow. Tasks that fit nowhere are skipped. The committed tasks of the
// scheduler are left exactly as they were, whatever the outcome.
func (s *ProbabilisticScheduler) PlanSlots(ctx context.Context, tasks []schedulingDomain.Task) (assignments []Assignment, err error) {
	ctx = observability.WithOperation(ctx, "plan_slots")
	timer := observability.StartTimer("plan_slots").WithLogger(s.logger).WithMetrics(s.metrics)
	defer func() { timer.Stop(ctx, err) }()

	ordered := make([]schedulingDomain.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DurationMin() > ordered[j].DurationMin()
	})

	scratch := s.schedule.Clone()
	result := make([]Assignment, 0, len(ordered))
	for _, task := range ordered {
		slot, err := s.chooseOn(ctx, scratch, task)
		if err != nil {
			return nil, fmt.Errorf("plan task %q: %w", task.Name(), err)
		}
		if slot == nil {
			s.metrics.Counter(observability.MetricTasksSkipped, 1, observability.T("category", task.Category()))
			s.logger.DebugContext(ctx, "no slot available",
				slog.String("task", task.Name()),
				slog.Int("duration_min", task.DurationMin()),
			)
			continue
		}

		planned := task.ScheduledAt(slot.StartTime())
		if err := scratch.AddTask(planned); err != nil {
			return nil, fmt.Errorf("plan task %q: %w", task.Name(), err)
		}
		s.metrics.Counter(observability.MetricTasksPlaced, 1, observability.T("category", task.Category()))
		result = append(result, Assignment{Task: planned, Slot: *slot})
	}

	s.metrics.Gauge(observability.MetricPlanUtilization, scratch.Utilization())
	s.logger.InfoContext(ctx, "planned tasks",
		slog.Int("requested", len(tasks)),
		slog.Int("placed", len(result)),
		slog.Float64("utilization_pct", scratch.Utilization()),
	)
	return result, nil
}

func (s *ProbabilisticScheduler) proposeOn(
	ctx context.Context,
	schedule *schedulingDomain.Schedule,
	task schedulingDomain.Task,
) ([]SlotProbability, error) {
	slots, err := schedule.ProposeSlots(task.DurationMin(), s.config.SlotStep)
	if err != nil {
		return nil, err
	}
	s.metrics.Histogram(observability.MetricSlotsProposed, float64(len(slots)))
	if len(slots) == 0 {
		return []SlotProbability{}, nil
	}

	dist, err := s.estimator.Estimate(task, s.estimator.Priors())
	if err != nil {
		return nil, fmt.Errorf("estimate preference for %q: %w", task.Name(), err)
	}

	proposals := make([]SlotProbability, len(slots))
	total := 0.0
	for i, slot := range slots {
		score, err := dist.DensityFor(slot.StartMinute(), slot.EndMinute())
		if err != nil {
			return nil, fmt.Errorf("score slot %s: %w", slot, err)
		}
		proposals[i] = SlotProbability{Probability: score, Slot: slot}
		total += score
	}
	if !(total > 0) {
		return nil, fmt.Errorf("preference for %q gives no weight to any candidate: %w", task.Name(), sharedDomain.ErrInvalidArgument)
	}
	for i := range proposals {
		proposals[i].Probability /= total
	}

	s.logger.DebugContext(ctx, "proposed slots",
		slog.String("task", task.Name()),
		slog.String("category", task.Category()),
		slog.Int("candidates", len(proposals)),
	)
	return proposals, nil
}

func (s *ProbabilisticScheduler) chooseOn(
	ctx context.Context,
	schedule *schedulingDomain.Schedule,
	task schedulingDomain.Task,
) (*schedulingDomain.Slot, error) {
	proposals, err := s.proposeOn(ctx, schedule, task)
	if err != nil {
		return nil, err
	}
	if len(proposals) == 0 {
		return nil, nil
	}

	probs := make([]float64, len(proposals))
	for i, p := range proposals {
		probs[i] = p.Probability
	}

	s.rngMu.Lock()
	counts, err := multinomial(s.rng, s.config.SampleCount, probs)
	s.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	chosen := proposals[argmax(counts)].Slot
	s.logger.DebugContext(ctx, "chose slot",
		slog.String("task", task.Name()),
		slog.String("slot", chosen.String()),
	)
	return &chosen, nil
}
