package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/backplan/internal/cli/formatter"
	"github.com/alexanderramin/backplan/internal/contract"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		deadline    time.Time
		templateID  string
		bureauID    string
		assignments []string
		workID      string
		workName    string
		noChecklist bool
		save        bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a back-plan for a deadline",
		Long: "Dates every template task and checklist item backwards from the\n" +
			"deadline, assigns them through --assign role=person pairs and flags people\n" +
			"who already carry a heavy load on the same day.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := parseAssignments(assignments)
			if err != nil {
				return err
			}
			if save && workID == "" {
				return fmt.Errorf("--save requires --work")
			}

			req := contract.NewGenerateRequest(deadline, templateID, bureauID)
			req.TeamAssignments = team
			req.CurrentWorkID = workID
			req.IncludeChecklist = !noChecklist
			now := app.now()
			req.Now = &now

			resp, err := app.Backplanning.GenerateBackplanning(cmd.Context(), req)
			if err != nil {
				return err
			}

			var saved *contract.SavePlanResult
			if save {
				saved, err = app.Plans.SavePlan(cmd.Context(), contract.SavePlanRequest{
					WorkID:   workID,
					WorkName: workName,
					BureauID: bureauID,
					Deadline: &resp.Metadata.Deadline,
					Tasks:    resp.AllTasks(),
				})
				if err != nil {
					return fmt.Errorf("saving plan: %w", err)
				}
			}

			if asJSON {
				return writeJSON(app.out(), toPlanJSON(resp, saved))
			}
			fmt.Fprint(app.out(), formatter.FormatPlan(resp))
			if saved != nil {
				fmt.Fprint(app.out(), "\n"+formatter.FormatSaveResult(saved))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Var(newDateValue(&deadline), "deadline", "submission deadline (YYYY-MM-DD)")
	flags.StringVar(&templateID, "template", "", "planning template id")
	flags.StringVar(&bureauID, "bureau", "", "bureau id")
	flags.StringArrayVar(&assignments, "assign", nil, "role=person assignment (repeatable)")
	flags.StringVar(&workID, "work", "", "work the plan belongs to; its stored tasks are ignored in workload checks")
	flags.StringVar(&workName, "work-name", "", "name for a new work when saving")
	flags.BoolVar(&noChecklist, "no-checklist", false, "leave out the submission checklist")
	flags.BoolVar(&save, "save", false, "store the plan for --work, replacing its previous plan")
	flags.BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	_ = cmd.MarkFlagRequired("deadline")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("bureau")

	return cmd
}
