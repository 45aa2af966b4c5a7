package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/repository"
	"github.com/alexanderramin/backplan/internal/testutil"
)

const testBureau = "bureau-1"

var (
	// Friday; the Monday 2026-03-09 is a bureau holiday in seeded fixtures.
	testDeadline = domain.Date(2026, 3, 13)
	testNow      = domain.Date(2026, 2, 2)
	errBoom      = errors.New("boom")
)

type repos struct {
	db        *sql.DB
	templates *repository.SQLiteTemplateRepo
	checklist *repository.SQLiteChecklistRepo
	holidays  *repository.SQLiteHolidayRepo
	team      *repository.SQLiteTeamRepo
	works     *repository.SQLiteWorkRepo
	tasks     *repository.SQLitePlanTaskRepo
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:        database,
		templates: repository.NewSQLiteTemplateRepo(database),
		checklist: repository.NewSQLiteChecklistRepo(database),
		holidays:  repository.NewSQLiteHolidayRepo(database),
		team:      repository.NewSQLiteTeamRepo(database),
		works:     repository.NewSQLiteWorkRepo(database),
		tasks:     repository.NewSQLitePlanTaskRepo(database),
	}
}

type seeded struct {
	templateID string
	current    *domain.Work
	other      *domain.Work
}

// seedCatalog stores a two-task template, one checklist item, the 2026-03-09
// holiday, two team members and two works.
func seedCatalog(t *testing.T, r repos) seeded {
	t.Helper()
	ctx := context.Background()

	tpl := testutil.NewTestTemplate(testBureau, "Standard", testutil.WithDefaultTemplate())
	require.NoError(t, r.templates.Create(ctx, tpl))
	for _, task := range []*domain.TemplateTask{
		testutil.NewTestTemplateTask(tpl.ID, "Kick-off", domain.RoleWriter, 10, testutil.WithOrder(0), testutil.WithDuration(2)),
		testutil.NewTestTemplateTask(tpl.ID, "Submit", domain.RoleTenderManager, 0, testutil.WithOrder(1), testutil.WithMilestone()),
	} {
		require.NoError(t, r.templates.CreateTask(ctx, task))
	}

	require.NoError(t, r.checklist.Create(ctx,
		testutil.NewTestChecklistItem(testBureau, "Quality plan", 0, testutil.WithSection("Kwaliteit"))))
	require.NoError(t, r.holidays.Upsert(ctx, domain.Holiday{BureauID: testBureau, Date: domain.Date(2026, 3, 9), Name: "Bureau day"}))

	require.NoError(t, r.team.Create(ctx, testutil.NewTestPerson(testBureau, "p-writer", "Wendy Writer")))
	require.NoError(t, r.team.Create(ctx, testutil.NewTestPerson(testBureau, "p-tm", "Tom Manager")))

	current := testutil.NewTestWork(testBureau, "Tender Current", &testDeadline)
	other := testutil.NewTestWork(testBureau, "Tender Other", nil)
	require.NoError(t, r.works.Create(ctx, current))
	require.NoError(t, r.works.Create(ctx, other))

	return seeded{templateID: tpl.ID, current: current, other: other}
}

func seedLoad(t *testing.T, r repos, work *domain.Work, personID string, day time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, r.tasks.Create(context.Background(),
			testutil.NewTestPlanTask(work, "existing", day, testutil.WithAssignee(personID))))
	}
}

func newTestBackplanning(r repos, opts ...Option) BackplanningService {
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewBackplanningService(r.templates, r.checklist, r.holidays, r.team, r.tasks, r.tasks, opts...)
}

func newTestPlans(r repos, uow db.UnitOfWork) PlanService {
	return NewPlanService(uow, r.works, r.tasks, r.team, WithClock(func() time.Time { return testNow }))
}

type failingHolidayRepo struct{ repository.HolidayRepo }

func (failingHolidayRepo) GetHolidays(context.Context, string, int) ([]domain.Holiday, error) {
	return nil, errBoom
}

type failingTeamRepo struct{ repository.TeamRepo }

func (failingTeamRepo) GetPersonSummaries(context.Context, []string) (map[string]domain.PersonSummary, error) {
	return nil, errBoom
}

type failingChecklistRepo struct{ repository.ChecklistRepo }

func (failingChecklistRepo) GetChecklistItems(context.Context, string) ([]domain.ChecklistTemplateItem, error) {
	return nil, errBoom
}

type failingTemplateRepo struct{ repository.TemplateRepo }

func (failingTemplateRepo) GetTemplateTasks(context.Context, string) ([]domain.TemplateTask, error) {
	return nil, errBoom
}

// selectiveLedger fails for one person and delegates the rest.
type selectiveLedger struct {
	repository.WorkloadLedger
	failFor string
}

func (l selectiveLedger) CountExistingTasks(ctx context.Context, personID string, dates []time.Time, exclude string) (map[time.Time]int, error) {
	if personID == l.failFor {
		return nil, errBoom
	}
	return l.WorkloadLedger.CountExistingTasks(ctx, personID, dates, exclude)
}

type countingSource struct {
	mu    sync.Mutex
	calls int
	refs  []domain.ScheduledTaskRef
	err   error
}

func (s *countingSource) ListScheduledTasks(context.Context, []string, time.Time, time.Time, *string) ([]domain.ScheduledTaskRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.refs, s.err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
