package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/backplan/internal/cli/formatter"
	"github.com/alexanderramin/backplan/internal/contract"
)

func newWorkloadCmd(app *App) *cobra.Command {
	var (
		people   []string
		start    time.Time
		end      time.Time
		bureauID string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "workload",
		Short: "Show weekly task counts per person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(people) == 0 {
				return fmt.Errorf("--people is required")
			}

			req := contract.WorkloadRequest{PersonIDs: people, Start: start, End: end}
			if bureauID != "" {
				req.BureauID = &bureauID
			}
			resp, err := app.Workload.GetWorkload(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(app.out(), toWorkloadJSON(resp))
			}
			fmt.Fprint(app.out(), formatter.FormatWorkload(resp, app.WeeklyLoad))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&people, "people", nil, "comma-separated person ids")
	flags.Var(newDateValue(&start), "start", "first day (YYYY-MM-DD)")
	flags.Var(newDateValue(&end), "end", "last day (YYYY-MM-DD)")
	flags.StringVar(&bureauID, "bureau", "", "only count tasks of this bureau")
	flags.BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
