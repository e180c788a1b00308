package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/services"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/domain"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/infrastructure/planfile"
	"github.com/spf13/cobra"
)

// Cmd is the plan command group
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan tasks into the free time of a day",
	Long: `Plan tasks into the free time of a day.

A plan file (YAML) may hold the window, committed and pending tasks,
category priors and task history. Tasks can also be given with flags:

  --task    "Name:category:minutes"
  --commit  "Name:category:minutes@HH:MM"`,
}

var errNoApp = errors.New("planner is not configured")

func init() {
	Cmd.AddCommand(dayCmd)
	Cmd.AddCommand(proposeCmd)
	Cmd.AddCommand(freeCmd)
}

// windowFlags overrides the window of the plan file and the environment.
type windowFlags struct {
	start int
	end   int
}

func (w *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&w.start, "start", -1, "window start hour (0-23)")
	cmd.Flags().IntVar(&w.end, "end", -1, "window end hour (1-24)")
}

func (w *windowFlags) reset() {
	w.start, w.end = -1, -1
}

func (w *windowFlags) resolve(app *cli.App, doc *planfile.Document) (domain.Window, error) {
	fallback, err := app.DefaultWindow()
	if err != nil {
		return domain.Window{}, err
	}
	window, err := doc.ResolveWindow(fallback)
	if err != nil {
		return domain.Window{}, err
	}
	if w.start < 0 && w.end < 0 {
		return window, nil
	}
	start, end := window.StartHour(), window.EndHour()
	if w.start >= 0 {
		start = w.start
	}
	if w.end >= 0 {
		end = w.end
	}
	return domain.NewWindow(start, end)
}

// loadDocument reads the optional plan file named by args.
func loadDocument(app *cli.App, args []string) (*planfile.Document, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return app.LoadDocument(path)
}

// parseTaskFlag parses "Name:category:minutes" with an optional "@HH:MM"
// start. The category may be empty.
func parseTaskFlag(value string) (services.TaskInput, error) {
	head, start, _ := strings.Cut(value, "@")

	durIdx := strings.LastIndex(head, ":")
	if durIdx < 0 {
		return services.TaskInput{}, fmt.Errorf("task %q: want Name:category:minutes", value)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(head[durIdx+1:]))
	if err != nil {
		return services.TaskInput{}, fmt.Errorf("task %q: invalid minutes: %w", value, err)
	}

	rest := head[:durIdx]
	name, category := rest, ""
	if catIdx := strings.LastIndex(rest, ":"); catIdx >= 0 {
		name, category = rest[:catIdx], rest[catIdx+1:]
	}

	return services.TaskInput{
		Name:        strings.TrimSpace(name),
		Category:    strings.TrimSpace(category),
		DurationMin: minutes,
		Start:       strings.TrimSpace(start),
	}, nil
}

func parseTaskFlags(values []string) ([]services.TaskInput, error) {
	inputs := make([]services.TaskInput, 0, len(values))
	for _, v := range values {
		in, err := parseTaskFlag(v)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
