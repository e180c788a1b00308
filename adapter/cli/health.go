package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check configuration and priors",
	Long: `Check that the configuration is consistent and that the priors
file, if one is configured, can be read and turned into distributions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return errors.New("app not initialized")
		}
		if err := app.Config.Validate(); err != nil {
			return err
		}

		doc, err := app.LoadDocument("")
		if err != nil {
			return err
		}
		priors, err := doc.BuildPriors(app.DistributionConfig())
		if err != nil {
			return fmt.Errorf("priors: %w", err)
		}
		window, err := app.DefaultWindow()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "window:     %s\n", window)
		fmt.Fprintf(out, "slot step:  %d min\n", app.Config.SlotStep)
		fmt.Fprintf(out, "interval:   %d min\n", app.Config.IntervalLength)
		fmt.Fprintf(out, "priors:     %d categories, %d history tasks\n", priors.Len(), len(doc.History))
		fmt.Fprintln(out, "ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
