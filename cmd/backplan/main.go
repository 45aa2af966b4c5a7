package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/backplan/internal/cli"
	"github.com/alexanderramin/backplan/internal/cli/formatter"
	"github.com/alexanderramin/backplan/internal/config"
	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/logging"
	"github.com/alexanderramin/backplan/internal/metrics"
	"github.com/alexanderramin/backplan/internal/repository"
	"github.com/alexanderramin/backplan/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{}
	var closers []func() error

	app.Setup = func(opts cli.GlobalOptions) error {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if opts.DBPath != "" {
			cfg.DB.Path = opts.DBPath
		}
		if opts.LogLevel != "" {
			cfg.Log.Level = opts.LogLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, closeLog, err := logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		closers = append(closers, closeLog)

		recorder, err := metrics.NewRecorder(nil)
		if err != nil {
			return fmt.Errorf("creating metrics recorder: %w", err)
		}
		if cfg.Metrics.Textfile != "" {
			closers = append(closers, func() error {
				return recorder.WriteTextfile(cfg.Metrics.Textfile)
			})
		}

		database, err := db.OpenDB(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, database.Close)
		logger.Debug().Str("path", cfg.DB.Path).Msg("database opened")

		wire(app, database, logger, recorder, cfg)
		return nil
	}

	// Closers run in reverse so the log file outlives the database.
	app.Close = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		closers = nil
		return errors.Join(errs...)
	}

	rootCmd := cli.NewRootCmd(app)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		// PersistentPostRunE does not run after a failed command.
		_ = app.Close()
	}
	return err
}

func wire(app *cli.App, database *sql.DB, logger zerolog.Logger, recorder *metrics.Recorder, cfg *config.Config) {
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	checklistRepo := repository.NewSQLiteChecklistRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	teamRepo := repository.NewSQLiteTeamRepo(database)
	planTaskRepo := repository.NewSQLitePlanTaskRepo(database)
	workRepo := repository.NewSQLiteWorkRepo(database)

	observer := service.WithObserver(service.NewLogUseCaseObserver(logging.Component(logger, "use_case")))
	metricsObserver := service.WithObserver(service.NewMetricsUseCaseObserver(recorder))
	common := func(component string) []service.Option {
		return []service.Option{
			service.WithLogger(logging.Component(logger, component)),
			service.WithRecorder(recorder),
			observer,
			metricsObserver,
			service.WithThresholds(cfg.Planning.Thresholds()),
			service.WithChecklistPolicy(cfg.Planning.ChecklistPolicy()),
		}
	}

	backplanning := service.NewBackplanningService(
		templateRepo, checklistRepo, holidayRepo, teamRepo,
		planTaskRepo, planTaskRepo,
		common("backplanning")...,
	)
	uow := db.NewSQLiteUnitOfWork(database)
	catalog := service.NewCatalogService(uow, templateRepo, holidayRepo, teamRepo, common("catalog")...)
	plans := service.NewPlanService(uow, workRepo, planTaskRepo, teamRepo, common("plans")...)

	app.Backplanning = backplanning
	app.Workload = backplanning
	app.Plans = plans
	app.PlanQuery = plans
	app.Import = catalog
	app.Catalog = catalog
	app.WeeklyLoad = formatter.LoadScale{Warning: cfg.Planning.WeeklyWarning, Danger: cfg.Planning.WeeklyDanger}
}
