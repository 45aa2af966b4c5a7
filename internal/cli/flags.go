package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/backplan/internal/domain"
)

// dateValue is a pflag.Value accepting YYYY-MM-DD.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = dateValue{}

func newDateValue(p *time.Time) dateValue {
	return dateValue{t: p}
}

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return domain.FormatDate(*d.t)
}

func (d dateValue) Set(s string) error {
	parsed, err := domain.ParseDate(s)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	*d.t = parsed
	return nil
}

func (dateValue) Type() string { return "date" }

// parseAssignments turns role=person pairs into a team assignment. A role
// given twice keeps the last person.
func parseAssignments(pairs []string) (domain.TeamAssignment, error) {
	out := domain.TeamAssignment{}
	for _, pair := range pairs {
		role, person, ok := strings.Cut(pair, "=")
		role, person = strings.TrimSpace(role), strings.TrimSpace(person)
		if !ok || role == "" || person == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected role=person", pair)
		}
		out[strings.ToLower(role)] = person
	}
	return out, nil
}
