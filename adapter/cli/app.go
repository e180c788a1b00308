package cli

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayplan/internal/preference"
	scheduleCommands "github.com/felixgeelhaar/dayplan/internal/scheduling/application/commands"
	scheduleQueries "github.com/felixgeelhaar/dayplan/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/infrastructure/planfile"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	FindFreeBlocksHandler *scheduleQueries.FindFreeBlocksHandler
}

// NewApp creates a new CLI application from the loaded configuration.
func NewApp(cfg *config.Config, logger *slog.Logger, metrics observability.Metrics) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &App{
		Config:                cfg,
		Logger:                logger,
		Metrics:               metrics,
		FindFreeBlocksHandler: scheduleQueries.NewFindFreeBlocksHandler(),
	}
}

// DefaultWindow returns the window configured through the environment.
func (a *App) DefaultWindow() (domain.Window, error) {
	return domain.NewWindow(a.Config.WindowStartHour, a.Config.WindowEndHour)
}

// DistributionConfig returns the distribution settings.
func (a *App) DistributionConfig() preference.DistributionConfig {
	return preference.DistributionConfig{
		IntervalLength: a.Config.IntervalLength,
		Floor:          a.Config.DensityFloor,
	}
}

// SchedulerConfig returns the selector settings.
func (a *App) SchedulerConfig() services.SchedulerConfig {
	return services.SchedulerConfig{
		SlotStep:    a.Config.SlotStep,
		SampleCount: a.Config.SampleCount,
	}
}

// LoadDocument reads the plan at path, if any, and folds in the priors file
// from the command line or the environment.
func (a *App) LoadDocument(path string) (*planfile.Document, error) {
	doc := &planfile.Document{}
	if path != "" {
		loaded, err := planfile.Load(path)
		if err != nil {
			return nil, err
		}
		doc = loaded
	}

	priorsPath := PriorsFile()
	if priorsPath == "" {
		priorsPath = a.Config.PriorsFile
	}
	if priorsPath != "" {
		priors, err := planfile.Load(priorsPath)
		if err != nil {
			return nil, fmt.Errorf("priors file: %w", err)
		}
		doc.Merge(priors)
	}
	return doc, nil
}

// Estimator builds the preference estimator for doc.
func (a *App) Estimator(doc *planfile.Document) (preference.Estimator, error) {
	return doc.BuildEstimator(a.DistributionConfig())
}

// PlanDayHandler returns a plan handler using estimator.
func (a *App) PlanDayHandler(estimator preference.Estimator) *scheduleCommands.PlanDayHandler {
	return scheduleCommands.NewPlanDayHandler(estimator, a.SchedulerConfig(), a.Logger, a.Metrics)
}

// ProposeSlotsHandler returns a proposal handler using estimator.
func (a *App) ProposeSlotsHandler(estimator preference.Estimator) *scheduleQueries.ProposeSlotsHandler {
	return scheduleQueries.NewProposeSlotsHandler(estimator, a.SchedulerConfig(), a.Logger)
}

var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
