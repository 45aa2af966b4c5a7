package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
)

// Thresholds are the existing-task counts at which a person's day is flagged.
type Thresholds struct {
	Warning int
	Danger  int
}

// DefaultThresholds flags three existing tasks as a warning and five as danger.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 3, Danger: 5}
}

// orDefault replaces unset thresholds (Warning < 1) with DefaultThresholds.
func (t Thresholds) orDefault() Thresholds {
	if t.Warning < 1 {
		return DefaultThresholds()
	}
	return t
}

// Classify maps an existing-task count to a severity. ok is false below the
// warning threshold. The zero Thresholds classify like DefaultThresholds.
func (t Thresholds) Classify(existing int) (severity domain.Severity, ok bool) {
	t = t.orDefault()
	switch {
	case existing >= t.Danger:
		return domain.SeverityDanger, true
	case existing >= t.Warning:
		return domain.SeverityWarning, true
	default:
		return "", false
	}
}

// WorkloadLedger reports how many tasks from other bodies of work a person
// already has on each of the given dates. Dates without tasks may be absent
// from the result.
type WorkloadLedger interface {
	CountExistingTasks(ctx context.Context, personID string, dates []time.Time, excludeWorkID string) (map[time.Time]int, error)
}

// LookupFailure records a ledger query that failed for one person. The
// person's dates are treated as conflict-free.
type LookupFailure struct {
	PersonID string
	Dates    []time.Time
	Err      error
}

// ConflictInput carries the planned tasks to check and the detection context.
type ConflictInput struct {
	Tasks         []domain.PlannedTask
	ExcludeWorkID string
	Thresholds    Thresholds
	Directory     map[string]domain.PersonSummary
}

// DetectConflicts groups the assigned tasks by (person, start date), asks the
// ledger once per person for the existing counts on those dates and returns a
// warning for every group at or above the warning threshold. A failed lookup
// never aborts detection; it is reported in the failures and that person's
// groups produce no warnings.
func DetectConflicts(ctx context.Context, ledger WorkloadLedger, in ConflictInput) ([]domain.WorkloadWarning, []LookupFailure) {
	byPerson := groupDatesByPerson(in.Tasks)
	if len(byPerson) == 0 {
		return []domain.WorkloadWarning{}, nil
	}

	personIDs := make([]string, 0, len(byPerson))
	for id := range byPerson {
		personIDs = append(personIDs, id)
	}
	sort.Strings(personIDs)

	warnings := []domain.WorkloadWarning{}
	var failures []LookupFailure
	for _, personID := range personIDs {
		dates := byPerson[personID]
		counts, err := ledger.CountExistingTasks(ctx, personID, dates, in.ExcludeWorkID)
		if err != nil {
			failures = append(failures, LookupFailure{PersonID: personID, Dates: dates, Err: err})
			continue
		}
		for _, date := range dates {
			existing := counts[date]
			severity, ok := in.Thresholds.Classify(existing)
			if !ok {
				continue
			}
			name := personID
			if p, found := in.Directory[personID]; found && p.Name != "" {
				name = p.Name
			}
			warnings = append(warnings, domain.WorkloadWarning{
				PersonID:      personID,
				PersonName:    name,
				Date:          date,
				Week:          domain.ISOWeekKey(date),
				ExistingCount: existing,
				Severity:      severity,
				Message:       fmt.Sprintf("%s already has %d tasks on %s", name, existing, domain.FormatDate(date)),
			})
		}
	}

	SortWarnings(warnings)
	return warnings, failures
}

// groupDatesByPerson returns the distinct start dates per assignee, sorted.
// Unassigned tasks are skipped.
func groupDatesByPerson(tasks []domain.PlannedTask) map[string][]time.Time {
	seen := make(map[string]map[time.Time]bool)
	for _, t := range tasks {
		if !t.HasAssignee() {
			continue
		}
		id := *t.AssigneeID
		if seen[id] == nil {
			seen[id] = make(map[time.Time]bool)
		}
		seen[id][domain.DateOf(t.StartDate)] = true
	}

	out := make(map[string][]time.Time, len(seen))
	for id, set := range seen {
		dates := make([]time.Time, 0, len(set))
		for d := range set {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		out[id] = dates
	}
	return out
}

type conflictKey struct {
	personID string
	date     time.Time
}

// AttachConflicts sets Conflict on every task whose (assignee, start date)
// matches a warning. Tasks without an assignee are left untouched.
func AttachConflicts(tasks []domain.PlannedTask, warnings []domain.WorkloadWarning) {
	if len(warnings) == 0 {
		return
	}
	index := make(map[conflictKey]*domain.WorkloadWarning, len(warnings))
	for i := range warnings {
		w := warnings[i]
		index[conflictKey{w.PersonID, domain.DateOf(w.Date)}] = &w
	}
	for i := range tasks {
		if !tasks[i].HasAssignee() {
			continue
		}
		if w, ok := index[conflictKey{*tasks[i].AssigneeID, domain.DateOf(tasks[i].StartDate)}]; ok {
			tasks[i].Conflict = w
		}
	}
}
