package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/backplan/internal/app"
	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/importer"
	"github.com/alexanderramin/backplan/internal/repository"
)

type catalogService struct {
	uow       db.UnitOfWork
	templates repository.TemplateRepo
	holidays  repository.HolidayRepo
	team      repository.TeamRepo
	opts      options
}

func NewCatalogService(
	uow db.UnitOfWork,
	templates repository.TemplateRepo,
	holidays repository.HolidayRepo,
	team repository.TeamRepo,
	opts ...Option,
) CatalogService {
	return &catalogService{
		uow:       uow,
		templates: templates,
		holidays:  holidays,
		team:      team,
		opts:      buildOptions(opts),
	}
}

func (s *catalogService) ImportCatalog(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadCatalogSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.ImportCatalogFromSchema(ctx, schema)
}

func (s *catalogService) ImportCatalogFromSchema(ctx context.Context, schema *importer.CatalogSchema) (result *app.ImportResult, err error) {
	startedAt := s.opts.now()
	fields := map[string]any{}
	defer func() {
		s.opts.observer().ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-catalog",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateCatalogSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	fields["bureau_id"] = schema.BureauID

	var catalog *importer.Catalog
	catalog, err = importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting catalog: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		txChecklist := repository.NewSQLiteChecklistRepo(tx)
		txHolidays := repository.NewSQLiteHolidayRepo(tx)
		txTeam := repository.NewSQLiteTeamRepo(tx)
		txWorks := repository.NewSQLiteWorkRepo(tx)

		for _, t := range catalog.Templates {
			if err := txTemplates.Create(ctx, t); err != nil {
				return fmt.Errorf("creating template '%s': %w", t.Name, err)
			}
		}
		for _, task := range catalog.Tasks {
			if err := txTemplates.CreateTask(ctx, task); err != nil {
				return fmt.Errorf("creating template task '%s': %w", task.Name, err)
			}
		}
		for _, item := range catalog.Checklist {
			if err := txChecklist.Create(ctx, item); err != nil {
				return fmt.Errorf("creating checklist item '%s': %w", item.Name, err)
			}
		}
		for _, h := range catalog.Holidays {
			if err := txHolidays.Upsert(ctx, h); err != nil {
				return fmt.Errorf("storing holiday %s: %w", domain.FormatDate(h.Date), err)
			}
		}
		for _, m := range catalog.Members {
			if err := txTeam.Create(ctx, m); err != nil {
				return fmt.Errorf("creating team member '%s': %w", m.Name, err)
			}
		}
		for _, w := range catalog.Works {
			if err := txWorks.Create(ctx, w); err != nil {
				return fmt.Errorf("creating work '%s': %w", w.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		BureauID:       catalog.BureauID,
		TemplateCount:  len(catalog.Templates),
		TaskCount:      len(catalog.Tasks),
		ChecklistCount: len(catalog.Checklist),
		HolidayCount:   len(catalog.Holidays),
		MemberCount:    len(catalog.Members),
		WorkCount:      len(catalog.Works),
		Warnings:       importer.RoleWarnings(schema),
	}
	fields["template_count"] = result.TemplateCount
	fields["task_count"] = result.TaskCount
	for _, w := range result.Warnings {
		s.opts.logger.Warn().Str("bureau_id", result.BureauID).Msg(w)
	}
	return result, nil
}

func (s *catalogService) ListTemplates(ctx context.Context, bureauID string) ([]*domain.Template, error) {
	if strings.TrimSpace(bureauID) == "" {
		return nil, app.NewValidationError(app.ErrMissingBureau, "bureau id is required")
	}
	templates, err := s.templates.ListByBureau(ctx, bureauID)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns an active or inactive template with its tasks in
// sort order.
func (s *catalogService) GetTemplate(ctx context.Context, templateID string) (*app.TemplateDetail, error) {
	if strings.TrimSpace(templateID) == "" {
		return nil, app.NewValidationError(app.ErrMissingTemplate, "template id is required")
	}
	tpl, err := s.templates.GetByID(ctx, templateID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, app.NewValidationError(app.ErrTemplateNotFound, fmt.Sprintf("template %s not found", templateID))
	}
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	tasks, err := s.templates.GetTemplateTasks(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("loading template tasks: %w", err)
	}
	return &app.TemplateDetail{Template: tpl, Tasks: tasks}, nil
}

func (s *catalogService) ListTeam(ctx context.Context, bureauID string) ([]domain.PersonSummary, error) {
	if strings.TrimSpace(bureauID) == "" {
		return nil, app.NewValidationError(app.ErrMissingBureau, "bureau id is required")
	}
	people, err := s.team.ListByBureau(ctx, bureauID)
	if err != nil {
		return nil, fmt.Errorf("listing team: %w", err)
	}
	return people, nil
}

func (s *catalogService) ListHolidays(ctx context.Context, bureauID string, year int) ([]domain.Holiday, error) {
	if strings.TrimSpace(bureauID) == "" {
		return nil, app.NewValidationError(app.ErrMissingBureau, "bureau id is required")
	}
	holidays, err := s.holidays.GetHolidays(ctx, bureauID, year)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	return holidays, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
