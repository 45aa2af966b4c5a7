package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/backplan/internal/app"
	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/repository"
)

type planService struct {
	uow   db.UnitOfWork
	works repository.WorkRepo
	tasks repository.PlanTaskRepo
	team  repository.TeamRepo
	opts  options
}

func NewPlanService(
	uow db.UnitOfWork,
	works repository.WorkRepo,
	tasks repository.PlanTaskRepo,
	team repository.TeamRepo,
	opts ...Option,
) PlanService {
	return &planService{
		uow:   uow,
		works: works,
		tasks: tasks,
		team:  team,
		opts:  buildOptions(opts),
	}
}

// SavePlan replaces the stored tasks of req.WorkID with req.Tasks in a
// single transaction. Either the whole plan is stored or nothing changes.
func (s *planService) SavePlan(ctx context.Context, req app.SavePlanRequest) (result *app.SavePlanResult, err error) {
	startedAt := s.opts.now()
	fields := map[string]any{
		"work_id":    req.WorkID,
		"task_count": len(req.Tasks),
	}
	defer func() {
		s.opts.observer().ObserveUseCase(ctx, UseCaseEvent{
			Name:      "save-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if strings.TrimSpace(req.WorkID) == "" {
		return nil, app.NewValidationError(app.ErrMissingWork, "work id is required")
	}
	if strings.TrimSpace(req.BureauID) == "" {
		return nil, app.NewValidationError(app.ErrMissingBureau, "bureau id is required")
	}

	now := startedAt.UTC()
	result = &app.SavePlanResult{WorkID: req.WorkID}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		works := repository.NewSQLiteWorkRepo(tx)
		tasks := repository.NewSQLitePlanTaskRepo(tx)

		bureauID := req.BureauID
		work, err := works.GetByID(ctx, req.WorkID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			work = &domain.Work{
				ID:        req.WorkID,
				BureauID:  req.BureauID,
				Name:      domain.CoalesceStr(strings.TrimSpace(req.WorkName), req.WorkID),
				Deadline:  req.Deadline,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := works.Create(ctx, work); err != nil {
				return fmt.Errorf("creating work: %w", err)
			}
			result.CreatedWork = true
		case err != nil:
			return fmt.Errorf("loading work: %w", err)
		default:
			bureauID = work.BureauID
		}

		deleted, err := tasks.DeleteByWork(ctx, req.WorkID)
		if err != nil {
			return err
		}
		result.Deleted = deleted

		for _, pt := range req.Tasks {
			row := persistedFromPlanned(pt, req.WorkID, bureauID, now)
			if err := tasks.Create(ctx, row); err != nil {
				return fmt.Errorf("storing task '%s': %w", pt.Name, err)
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["created_work"] = result.CreatedWork
	fields["deleted"] = result.Deleted
	return result, nil
}

func persistedFromPlanned(pt domain.PlannedTask, workID, bureauID string, now time.Time) *domain.PersistedTask {
	kind := pt.Kind
	if kind == "" {
		kind = domain.KindTask
	}
	var assignee *string
	if pt.HasAssignee() {
		assignee = domain.StrPtr(*pt.AssigneeID)
	}
	return &domain.PersistedTask{
		ID:               uuid.New().String(),
		WorkID:           workID,
		BureauID:         bureauID,
		Kind:             kind,
		Name:             pt.Name,
		Description:      pt.Description,
		Role:             pt.Role,
		Category:         domain.CoalesceStr(pt.Category, domain.DefaultCategory),
		AssigneeID:       assignee,
		StartDate:        domain.DateOf(pt.StartDate),
		EndDate:          domain.DateOf(pt.EndDate),
		DurationWorkdays: max(pt.DurationWorkdays, 1),
		IsMilestone:      pt.IsMilestone,
		IsRequired:       pt.IsRequired,
		TMinus:           pt.TMinus,
		Order:            pt.Order,
		CreatedAt:        now,
	}
}

// GetPlan loads the stored plan of a work. Assignees that no longer resolve
// to a team member are left out of People.
func (s *planService) GetPlan(ctx context.Context, workID string) (*app.StoredPlan, error) {
	if strings.TrimSpace(workID) == "" {
		return nil, app.NewValidationError(app.ErrMissingWork, "work id is required")
	}
	work, err := s.works.GetByID(ctx, workID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, app.NewValidationError(app.ErrWorkNotFound, fmt.Sprintf("work %s not found", workID))
	}
	if err != nil {
		return nil, fmt.Errorf("loading work: %w", err)
	}

	tasks, err := s.tasks.ListByWork(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("loading plan tasks: %w", err)
	}

	var ids []string
	seen := map[string]bool{}
	for _, t := range tasks {
		if t.AssigneeID == nil || *t.AssigneeID == "" || seen[*t.AssigneeID] {
			continue
		}
		seen[*t.AssigneeID] = true
		ids = append(ids, *t.AssigneeID)
	}
	people, err := s.team.GetPersonSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving assignees: %w", err)
	}

	return &app.StoredPlan{Work: work, Tasks: tasks, People: people}, nil
}
