package scheduler

import (
	"sort"

	"github.com/alexanderramin/backplan/internal/domain"
)

// SortByOrder sorts planned tasks by ascending Order, keeping the relative
// position of equal orders.
func SortByOrder(tasks []domain.PlannedTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
}

// SeverityPriority returns a sort priority (lower = more severe).
func SeverityPriority(s domain.Severity) int {
	switch s {
	case domain.SeverityDanger:
		return 0
	case domain.SeverityWarning:
		return 1
	default:
		return 2
	}
}

// SortWarnings orders warnings by the canonical rules:
// 1. Date: earliest first
// 2. Person ID: lexical ascending
func SortWarnings(warnings []domain.WorkloadWarning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		a, b := warnings[i], warnings[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.PersonID < b.PersonID
	})
}
