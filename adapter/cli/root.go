package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	priorsFile string
	verbose    bool
	logger     *slog.Logger
)

type commandContext struct {
	correlationID string
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dayplan",
	Short: "dayplan - probabilistic day planner",
	Long: `dayplan places tasks into the free time of a day.

	Candidate slots are weighted by how well they match each task's
	time-of-day preference and one is drawn at random, so repeated plans
	vary while favouring the hours a task belongs in.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		if verbose {
			logger = observability.NewLogger(observability.LogConfig{
				Level:       observability.LogLevelDebug,
				Format:      observability.LogFormatText,
				ServiceName: "dayplan",
			})
			if app != nil {
				app.Logger = logger
			}
		}
		info := commandContext{
			correlationID: uuid.NewString(),
			startedAt:     time.Now(),
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = observability.WithCorrelationID(ctx, info.correlationID)
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.DebugContext(ctx, "command start",
			"command", cmd.CommandPath(),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.DebugContext(cmd.Context(), "command end",
			"command", cmd.CommandPath(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, exiting non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&priorsFile, "priors", "p", "", "YAML file with category priors and history (overrides DAYPLAN_PRIORS_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// PriorsFile returns the priors file chosen on the command line, if any.
func PriorsFile() string {
	return priorsFile
}
