package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	freeCommitted []string
	freeMin       int
	freeWindow    windowFlags
)

var freeCmd = &cobra.Command{
	Use:   "free [plan.yaml]",
	Short: "List the free blocks of the day",
	Long: `List the free blocks left in the window after committed tasks.

Examples:
  dayplan plan free plan.yaml
  dayplan plan free --commit "Lunch:personal:60@12:00" --min 30`,
	Aliases: []string{"available", "slots"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.FindFreeBlocksHandler == nil {
			return errNoApp
		}

		doc, err := loadDocument(app, args)
		if err != nil {
			return err
		}
		window, err := freeWindow.resolve(app, doc)
		if err != nil {
			return err
		}
		committed, err := parseTaskFlags(freeCommitted)
		if err != nil {
			return err
		}

		blocks, err := app.FindFreeBlocksHandler.Handle(cmd.Context(), queries.FindFreeBlocksQuery{
			Window:      window,
			Committed:   append(doc.CommittedInputs(), committed...),
			MinDuration: freeMin,
		})
		if err != nil {
			return fmt.Errorf("failed to find free blocks: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Free blocks in %s\n", window)
		fmt.Fprintf(out, "Minimum duration: %d minutes\n", freeMin)
		fmt.Fprintln(out, strings.Repeat("-", 50))

		if len(blocks) == 0 {
			fmt.Fprintln(out, "\n  No free blocks found.")
			return nil
		}

		total := 0
		for _, b := range blocks {
			fmt.Fprintf(out, "  %s - %s  (%s free)\n", b.Start, b.End,
				formatDuration(time.Duration(b.DurationMin)*time.Minute))
			total += b.DurationMin
		}

		fmt.Fprintln(out, strings.Repeat("-", 50))
		fmt.Fprintf(out, "Total: %d blocks, %s free\n", len(blocks), formatDuration(time.Duration(total)*time.Minute))
		return nil
	},
}

func init() {
	freeCmd.Flags().StringArrayVar(&freeCommitted, "commit", nil, `committed task "Name:category:minutes@HH:MM" (repeatable)`)
	freeCmd.Flags().IntVarP(&freeMin, "min", "m", 0, "minimum block duration in minutes")
	freeWindow.register(freeCmd)
}
