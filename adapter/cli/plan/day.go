package plan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/commands"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dayTasks     []string
	dayCommitted []string
	daySeed      uint64
	dayOutput    string
	dayWindow    windowFlags
)

var dayCmd = &cobra.Command{
	Use:   "day [plan.yaml]",
	Short: "Place pending tasks into the day",
	Long: `Place pending tasks into the free time of the day, longest first.

Examples:
  dayplan plan day plan.yaml
  dayplan plan day --commit "Standup:work:15@09:00" --task "Read a paper:learning:30"
  dayplan plan day plan.yaml --seed 42 --output yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errNoApp
		}

		doc, err := loadDocument(app, args)
		if err != nil {
			return err
		}
		window, err := dayWindow.resolve(app, doc)
		if err != nil {
			return err
		}

		committed, err := parseTaskFlags(dayCommitted)
		if err != nil {
			return err
		}
		pending, err := parseTaskFlags(dayTasks)
		if err != nil {
			return err
		}

		seed := app.Config.Seed
		if doc.Seed != nil {
			seed = doc.Seed
		}
		if cmd.Flags().Changed("seed") {
			seed = &daySeed
		}

		estimator, err := app.Estimator(doc)
		if err != nil {
			return err
		}

		result, err := app.PlanDayHandler(estimator).Handle(cmd.Context(), commands.PlanDayCommand{
			Window:    window,
			Committed: append(doc.CommittedInputs(), committed...),
			Pending:   append(doc.PendingInputs(), pending...),
			Seed:      seed,
		})
		if err != nil {
			return fmt.Errorf("failed to plan day: %w", err)
		}

		out := cmd.OutOrStdout()
		if dayOutput == "yaml" {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(newPlanView(window.String(), result)); err != nil {
				return err
			}
			return enc.Close()
		}

		fmt.Fprintf(out, "Plan for %s\n", window)
		fmt.Fprintln(out, strings.Repeat("-", 50))

		placed := make([]commands.TaskPlanResult, 0, result.PlacedCount)
		var skipped []commands.TaskPlanResult
		for _, r := range result.Results {
			if r.Scheduled {
				placed = append(placed, r)
			} else {
				skipped = append(skipped, r)
			}
		}
		sort.SliceStable(placed, func(i, j int) bool { return placed[i].Start < placed[j].Start })

		if len(placed) == 0 {
			fmt.Fprintln(out, "\n  No tasks placed.")
		}
		for _, r := range placed {
			fmt.Fprintf(out, "  %s - %s  %s (%s, %s)\n", r.Start, r.End, r.Name, categoryLabel(r.Category),
				formatDuration(time.Duration(r.DurationMin)*time.Minute))
		}
		for _, r := range skipped {
			fmt.Fprintf(out, "  skipped      %s: %s\n", r.Name, r.Reason)
		}

		fmt.Fprintln(out, strings.Repeat("-", 50))
		fmt.Fprintf(out, "Placed %d of %d tasks, %s planned, %.1f%% of the window used\n",
			result.PlacedCount, len(result.Results),
			formatDuration(time.Duration(result.PlannedMinutes)*time.Minute),
			result.UtilizationPct,
		)
		return nil
	},
}

func init() {
	dayCmd.Flags().StringArrayVarP(&dayTasks, "task", "t", nil, `pending task "Name:category:minutes" (repeatable)`)
	dayCmd.Flags().StringArrayVar(&dayCommitted, "commit", nil, `committed task "Name:category:minutes@HH:MM" (repeatable)`)
	dayCmd.Flags().Uint64Var(&daySeed, "seed", 0, "random seed for a reproducible plan")
	dayCmd.Flags().StringVarP(&dayOutput, "output", "o", "text", "output format (text or yaml)")
	dayWindow.register(dayCmd)
}

type planView struct {
	Window         string        `yaml:"window"`
	Placed         []taskView    `yaml:"placed"`
	Skipped        []skippedView `yaml:"skipped,omitempty"`
	PlannedMinutes int           `yaml:"planned_minutes"`
	Utilization    float64       `yaml:"utilization_pct"`
}

type taskView struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category,omitempty"`
	Duration int    `yaml:"duration"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
}

type skippedView struct {
	Name   string `yaml:"name"`
	Reason string `yaml:"reason"`
}

func newPlanView(window string, result *commands.PlanDayResult) planView {
	view := planView{
		Window:         window,
		Placed:         []taskView{},
		PlannedMinutes: result.PlannedMinutes,
		Utilization:    result.UtilizationPct,
	}
	for _, r := range result.Results {
		if !r.Scheduled {
			view.Skipped = append(view.Skipped, skippedView{Name: r.Name, Reason: r.Reason})
			continue
		}
		view.Placed = append(view.Placed, taskView{
			Name:     r.Name,
			Category: r.Category,
			Duration: r.DurationMin,
			Start:    r.Start,
			End:      r.End,
		})
	}
	return view
}

func categoryLabel(category string) string {
	if category == "" {
		return "uncategorized"
	}
	return category
}
