package domain

import "sort"

// PersonSummary is the display information of a team member.
type PersonSummary struct {
	ID          string
	BureauID    string
	Name        string
	Initials    string
	AvatarColor string
}

// DefaultAvatarColor is used when a directory entry has no colour of its own.
const DefaultAvatarColor = "#6b7280"

// TeamAssignment maps a role to the person assigned to it. A role maps to at
// most one person; unassigned roles are simply absent.
type TeamAssignment map[string]string

// AssigneeFor returns the person assigned to role, if any.
func (a TeamAssignment) AssigneeFor(role string) (string, bool) {
	id, ok := a[role]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// PersonIDs returns the distinct non-empty person ids of the assignment, sorted.
func (a TeamAssignment) PersonIDs() []string {
	seen := make(map[string]bool, len(a))
	ids := make([]string, 0, len(a))
	for _, id := range a {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
