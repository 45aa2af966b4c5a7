package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/backplan/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a bureau catalog from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(app.out(), formatter.FormatImportResult(result))
			return nil
		},
	}
}

func newTemplatesCmd(app *App) *cobra.Command {
	var bureauID string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List a bureau's planning templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Catalog.ListTemplates(cmd.Context(), bureauID)
			if err != nil {
				return err
			}
			fmt.Fprint(app.out(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
	cmd.Flags().StringVar(&bureauID, "bureau", "", "bureau id")
	_ = cmd.MarkFlagRequired("bureau")
	cmd.AddCommand(newTemplateShowCmd(app))
	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEMPLATE_ID",
		Short: "Show a template and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.Catalog.GetTemplate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(app.out(), formatter.FormatTemplateDetail(detail))
			return nil
		},
	}
}

func newTeamCmd(app *App) *cobra.Command {
	var bureauID string
	cmd := &cobra.Command{
		Use:   "team",
		Short: "List a bureau's team members and their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.Catalog.ListTeam(cmd.Context(), bureauID)
			if err != nil {
				return err
			}
			fmt.Fprint(app.out(), formatter.FormatTeamList(people))
			return nil
		},
	}
	cmd.Flags().StringVar(&bureauID, "bureau", "", "bureau id")
	_ = cmd.MarkFlagRequired("bureau")
	return cmd
}

func newHolidaysCmd(app *App) *cobra.Command {
	var (
		bureauID string
		year     int
	)
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List a bureau's holidays for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = app.now().Year()
			}
			holidays, err := app.Catalog.ListHolidays(cmd.Context(), bureauID, year)
			if err != nil {
				return err
			}
			fmt.Fprint(app.out(), formatter.FormatHolidayList(holidays))
			return nil
		},
	}
	cmd.Flags().StringVar(&bureauID, "bureau", "", "bureau id")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default: current year)")
	_ = cmd.MarkFlagRequired("bureau")
	return cmd
}
