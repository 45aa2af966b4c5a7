package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/backplan/internal/app"
	"github.com/alexanderramin/backplan/internal/calendar"
	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/metrics"
	"github.com/alexanderramin/backplan/internal/repository"
	"github.com/alexanderramin/backplan/internal/scheduler"
)

type backplanningService struct {
	templates repository.TemplateRepo
	checklist repository.ChecklistRepo
	holidays  repository.HolidayRepo
	team      repository.TeamRepo
	ledger    repository.WorkloadLedger
	source    repository.ScheduledTaskSource
	opts      options
}

func NewBackplanningService(
	templates repository.TemplateRepo,
	checklist repository.ChecklistRepo,
	holidays repository.HolidayRepo,
	team repository.TeamRepo,
	ledger repository.WorkloadLedger,
	source repository.ScheduledTaskSource,
	opts ...Option,
) BackplanningService {
	return &backplanningService{
		templates: templates,
		checklist: checklist,
		holidays:  holidays,
		team:      team,
		ledger:    ledger,
		source:    source,
		opts:      buildOptions(opts),
	}
}

func (s *backplanningService) GenerateBackplanning(ctx context.Context, req app.GenerateRequest) (resp *app.GenerateResponse, err error) {
	startedAt := s.opts.now()
	fields := map[string]any{
		"template_id": req.TemplateID,
		"bureau_id":   req.BureauID,
	}
	defer func() {
		s.opts.observer().ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-backplanning",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = validateGenerateRequest(req); err != nil {
		return nil, err
	}
	deadline := domain.DateOf(req.Deadline)
	fields["deadline"] = domain.FormatDate(deadline)

	var templateTasks []domain.TemplateTask
	templateTasks, err = s.templates.GetTemplateTasks(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app.NewValidationError(app.ErrTemplateNotFound,
				fmt.Sprintf("template %s does not exist", req.TemplateID))
		}
		return nil, fmt.Errorf("loading template tasks: %w", err)
	}

	today := domain.DateOf(startedAt)
	if req.Now != nil {
		today = domain.DateOf(*req.Now)
	}

	var (
		holidays      calendar.HolidaySet
		holidayNotes  []string
		directory     map[string]domain.PersonSummary
		directoryNote string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		holidays, holidayNotes = s.loadHolidays(gctx, req.BureauID, today, deadline)
		return nil
	})
	g.Go(func() error {
		directory, directoryNote = s.loadDirectory(gctx, req.TeamAssignments.PersonIDs())
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	notes := append([]string{}, holidayNotes...)
	if directoryNote != "" {
		notes = append(notes, directoryNote)
	}

	schedule := scheduler.ExpandTemplateTasks(scheduler.ExpandInput{
		Deadline:    deadline,
		Tasks:       templateTasks,
		Assignments: req.TeamAssignments,
		Directory:   directory,
		Holidays:    holidays,
	})

	checklist := []domain.PlannedTask{}
	if req.IncludeChecklist {
		var note string
		checklist, note = s.scheduleChecklist(ctx, req, deadline, directory, holidays)
		if note != "" {
			notes = append(notes, note)
		}
	}

	all := make([]domain.PlannedTask, 0, len(schedule)+len(checklist))
	all = append(all, schedule...)
	all = append(all, checklist...)
	warnings, failures := scheduler.DetectConflicts(ctx, s.ledger, scheduler.ConflictInput{
		Tasks:         all,
		ExcludeWorkID: req.CurrentWorkID,
		Thresholds:    s.opts.thresholds,
		Directory:     directory,
	})
	for _, f := range failures {
		s.opts.logger.Warn().
			Str("bureau_id", req.BureauID).
			Str("person_id", f.PersonID).
			Int("dates", len(f.Dates)).
			Err(f.Err).
			Msg("workload lookup failed; conflicts suppressed")
		s.opts.lookupFailed(metrics.SourceLedger)
		notes = append(notes, fmt.Sprintf("workload check unavailable for %s", f.PersonID))
	}
	scheduler.AttachConflicts(schedule, warnings)
	scheduler.AttachConflicts(checklist, warnings)

	s.record(schedule, checklist, warnings)
	fields["task_count"] = len(schedule)
	fields["checklist_count"] = len(checklist)
	fields["warning_count"] = len(warnings)
	fields["degraded"] = len(notes)

	return &app.GenerateResponse{
		GeneratedAt:      startedAt.UTC(),
		TemplateID:       req.TemplateID,
		BureauID:         req.BureauID,
		ScheduledTasks:   schedule,
		ChecklistItems:   checklist,
		WorkloadWarnings: warnings,
		Metadata:         scheduler.SummarizePlan(deadline, schedule, holidays),
		People:           directory,
		Notes:            notes,
	}, nil
}

func validateGenerateRequest(req app.GenerateRequest) error {
	if req.Deadline.IsZero() {
		return app.NewValidationError(app.ErrMissingDeadline, "deadline is required")
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return app.NewValidationError(app.ErrMissingTemplate, "template id is required")
	}
	if strings.TrimSpace(req.BureauID) == "" {
		return app.NewValidationError(app.ErrMissingBureau, "bureau id is required")
	}
	for role := range req.TeamAssignments {
		if strings.TrimSpace(role) == "" {
			return app.NewValidationError(app.ErrInvalidAssignment, "team assignment has an empty role")
		}
	}
	return nil
}

// loadHolidays collects the bureau's holidays for every year from today to
// the deadline, in whichever direction. A failed year is skipped.
func (s *backplanningService) loadHolidays(ctx context.Context, bureauID string, today, deadline time.Time) (calendar.HolidaySet, []string) {
	from, to := today.Year(), deadline.Year()
	if from > to {
		from, to = to, from
	}

	set := calendar.NewHolidaySet()
	var notes []string
	for year := from; year <= to; year++ {
		holidays, err := s.holidays.GetHolidays(ctx, bureauID, year)
		if err != nil {
			s.opts.logger.Warn().
				Str("bureau_id", bureauID).
				Int("year", year).
				Err(err).
				Msg("holiday lookup failed; planning without holidays")
			s.opts.lookupFailed(metrics.SourceHolidays)
			notes = append(notes, fmt.Sprintf("holidays for %d unavailable", year))
			continue
		}
		for _, h := range holidays {
			set.Add(h.Date)
		}
	}
	return set, notes
}

func (s *backplanningService) loadDirectory(ctx context.Context, ids []string) (map[string]domain.PersonSummary, string) {
	if len(ids) == 0 {
		return map[string]domain.PersonSummary{}, ""
	}
	people, err := s.team.GetPersonSummaries(ctx, ids)
	if err != nil {
		s.opts.logger.Warn().
			Strs("person_ids", ids).
			Err(err).
			Msg("team directory lookup failed; assignees left unresolved")
		s.opts.lookupFailed(metrics.SourceDirectory)
		return map[string]domain.PersonSummary{}, "team directory unavailable"
	}
	if people == nil {
		people = map[string]domain.PersonSummary{}
	}
	return people, ""
}

func (s *backplanningService) scheduleChecklist(
	ctx context.Context,
	req app.GenerateRequest,
	deadline time.Time,
	directory map[string]domain.PersonSummary,
	holidays calendar.HolidaySet,
) ([]domain.PlannedTask, string) {
	items, err := s.checklist.GetChecklistItems(ctx, req.BureauID)
	if err != nil {
		s.opts.logger.Warn().
			Str("bureau_id", req.BureauID).
			Err(err).
			Msg("checklist lookup failed; plan has no checklist")
		s.opts.lookupFailed(metrics.SourceChecklist)
		return []domain.PlannedTask{}, "checklist unavailable"
	}
	return scheduler.ScheduleChecklist(scheduler.ChecklistInput{
		Deadline:    deadline,
		Items:       items,
		Assignments: req.TeamAssignments,
		Directory:   directory,
		Holidays:    holidays,
		Policy:      s.opts.policy,
	}), ""
}

func (s *backplanningService) record(schedule, checklist []domain.PlannedTask, warnings []domain.WorkloadWarning) {
	rec := s.opts.recorder
	if rec == nil {
		return
	}
	rec.RecordPlannedTasks(string(domain.KindTask), len(schedule))
	rec.RecordPlannedTasks(string(domain.KindChecklist), len(checklist))
	for _, w := range warnings {
		rec.RecordConflict(string(w.Severity))
	}
}

func (s *backplanningService) GetWorkload(ctx context.Context, req app.WorkloadRequest) (resp *app.WorkloadResponse, err error) {
	startedAt := s.opts.now()
	fields := map[string]any{"person_count": len(req.PersonIDs)}
	defer func() {
		s.opts.observer().ObserveUseCase(ctx, UseCaseEvent{
			Name:      "get-workload",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	start, end := domain.DateOf(req.Start), domain.DateOf(req.End)
	if start.After(end) {
		return nil, app.NewValidationError(app.ErrInvalidDateRange,
			fmt.Sprintf("start %s is after end %s", domain.FormatDate(start), domain.FormatDate(end)))
	}
	ids := cleanPersonIDs(req.PersonIDs)
	if len(ids) == 0 {
		return nil, app.NewValidationError(app.ErrInvalidPersonIDs, "at least one person id is required")
	}

	resp = &app.WorkloadResponse{
		Workload: map[string]map[string]domain.WeekLoad{},
		People:   map[string]domain.PersonSummary{},
	}

	var refs []domain.ScheduledTaskRef
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lookupErr error
		refs, lookupErr = s.source.ListScheduledTasks(gctx, ids, start, end, req.BureauID)
		if lookupErr != nil {
			s.opts.logger.Warn().
				Strs("person_ids", ids).
				Str("start", domain.FormatDate(start)).
				Str("end", domain.FormatDate(end)).
				Err(lookupErr).
				Msg("workload source failed; returning empty workload")
			s.opts.lookupFailed(metrics.SourceAggregator)
			refs = nil
		}
		return nil
	})
	g.Go(func() error {
		resp.People, _ = s.loadDirectory(gctx, ids)
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	resp.Workload = scheduler.AggregateWorkload(refs)
	fields["week_buckets"] = countBuckets(resp.Workload)
	return resp, nil
}

// cleanPersonIDs trims, drops blanks and de-duplicates ids, sorted.
func cleanPersonIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func countBuckets(workload map[string]map[string]domain.WeekLoad) int {
	n := 0
	for _, weeks := range workload {
		n += len(weeks)
	}
	return n
}
