package plan

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	proposeTask      string
	proposeCommitted []string
	proposeStep      int
	proposeTop       int
	proposeWindow    windowFlags
)

var proposeCmd = &cobra.Command{
	Use:   "propose [plan.yaml]",
	Short: "Show candidate slots for a task with their probabilities",
	Long: `Show every slot a task could take, with the probability that the
planner would choose it.

Examples:
  dayplan plan propose plan.yaml --task "Meditate:wellness:15"
  dayplan plan propose --task "Deep work:work:90" --step 30 --top 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			return errNoApp
		}
		if proposeTask == "" {
			return errors.New("--task is required")
		}

		task, err := parseTaskFlag(proposeTask)
		if err != nil {
			return err
		}
		doc, err := loadDocument(app, args)
		if err != nil {
			return err
		}
		window, err := proposeWindow.resolve(app, doc)
		if err != nil {
			return err
		}
		committed, err := parseTaskFlags(proposeCommitted)
		if err != nil {
			return err
		}
		estimator, err := app.Estimator(doc)
		if err != nil {
			return err
		}

		slots, err := app.ProposeSlotsHandler(estimator).Handle(cmd.Context(), queries.ProposeSlotsQuery{
			Window:    window,
			Committed: append(doc.CommittedInputs(), committed...),
			Task:      task,
			SlotStep:  proposeStep,
		})
		if err != nil {
			return fmt.Errorf("failed to propose slots: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Candidate slots for %s (%d min) in %s\n", task.Name, task.DurationMin, window)
		fmt.Fprintln(out, strings.Repeat("-", 50))

		if len(slots) == 0 {
			fmt.Fprintln(out, "\n  No free slot is long enough.")
			return nil
		}

		shown := slots
		if proposeTop > 0 && proposeTop < len(slots) {
			shown = topSlots(slots, proposeTop)
		}
		for _, s := range shown {
			fmt.Fprintf(out, "  %s - %s  %6.2f%%  %s\n", s.Start, s.End, s.Probability*100, bar(s.Probability))
		}

		fmt.Fprintln(out, strings.Repeat("-", 50))
		fmt.Fprintf(out, "Total: %d candidate slots\n", len(slots))
		return nil
	},
}

func init() {
	proposeCmd.Flags().StringVarP(&proposeTask, "task", "t", "", `task to place "Name:category:minutes"`)
	proposeCmd.Flags().StringArrayVar(&proposeCommitted, "commit", nil, `committed task "Name:category:minutes@HH:MM" (repeatable)`)
	proposeCmd.Flags().IntVar(&proposeStep, "step", 0, "minutes between candidate starts (default from DAYPLAN_SLOT_STEP)")
	proposeCmd.Flags().IntVar(&proposeTop, "top", 0, "only show the N most likely slots")
	proposeWindow.register(proposeCmd)
}

// topSlots returns the n most likely slots, keeping earlier slots first on ties.
func topSlots(slots []queries.SlotProbabilityDTO, n int) []queries.SlotProbabilityDTO {
	ranked := make([]queries.SlotProbabilityDTO, len(slots))
	copy(ranked, slots)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})
	return ranked[:n]
}

func bar(p float64) string {
	const width = 20
	n := int(p*width + 0.5)
	if n == 0 && p > 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
