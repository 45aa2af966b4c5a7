package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/backplan/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect stored plans",
	}
	cmd.AddCommand(newPlanShowCmd(app))
	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var (
		workID string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the plan stored for a work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.PlanQuery.GetPlan(cmd.Context(), workID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(app.out(), toStoredPlanJSON(plan))
			}
			fmt.Fprint(app.out(), formatter.FormatStoredPlan(plan))
			return nil
		},
	}
	cmd.Flags().StringVar(&workID, "work", "", "work id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	_ = cmd.MarkFlagRequired("work")
	return cmd
}
