package cli

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/backplan/internal/app"
	"github.com/alexanderramin/backplan/internal/cli/formatter"
)

// GlobalOptions are the persistent flags every command shares.
type GlobalOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

// App holds the use cases CLI commands call. Setup, when set, runs before
// any command with the parsed global flags and fills in the use cases;
// Close runs after the command finishes.
type App struct {
	Backplanning app.BackplanningUseCase
	Workload     app.WorkloadUseCase
	Plans        app.SavePlanUseCase
	PlanQuery    app.PlanQueryUseCase
	Import       app.ImportCatalogUseCase
	Catalog      app.CatalogQueryUseCase

	// WeeklyLoad colours the weekly counts of the workload view.
	WeeklyLoad formatter.LoadScale

	Setup func(opts GlobalOptions) error
	Close func() error

	Out io.Writer
	Now func() time.Time
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "backplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts GlobalOptions

	root := &cobra.Command{
		Use:           "backplan",
		Short:         "Plan tender work backwards from a deadline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Close == nil {
				return nil
			}
			return app.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (.yaml, .yml or .json)")
	flags.StringVar(&opts.DBPath, "db", "", "SQLite database path (overrides config)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newGenerateCmd(app),
		newWorkloadCmd(app),
		newImportCmd(app),
		newTemplatesCmd(app),
		newHolidaysCmd(app),
		newTeamCmd(app),
		newPlanCmd(app),
	)

	return root
}
