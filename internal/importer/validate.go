package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
)

// ValidateCatalogSchema checks the catalog for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	var errs []error

	if strings.TrimSpace(schema.BureauID) == "" {
		errs = append(errs, fmt.Errorf("bureau_id is required"))
	}

	errs = append(errs, validateTemplates(schema.Templates)...)
	errs = append(errs, validateChecklist(schema.Checklist)...)
	errs = append(errs, validateHolidays(schema.Holidays)...)
	errs = append(errs, validateTeam(schema.Team)...)
	errs = append(errs, validateWorks(schema.Works)...)

	return errs
}

func validateTemplates(templates []TemplateImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, t := range templates {
		prefix := fmt.Sprintf("templates[%d]", i)

		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.ID != "" {
			if ids[t.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, t.ID))
			}
			ids[t.ID] = true
		}

		for j, task := range t.Tasks {
			tp := fmt.Sprintf("%s.tasks[%d]", prefix, j)
			if task.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", tp))
			}
			if task.Role == "" {
				errs = append(errs, fmt.Errorf("%s.role is required", tp))
			}
			if task.TMinusWorkdays < 0 {
				errs = append(errs, fmt.Errorf("%s.t_minus_workdays must be >= 0", tp))
			}
			if task.DurationWorkdays != nil && *task.DurationWorkdays < 1 {
				errs = append(errs, fmt.Errorf("%s.duration_workdays must be >= 1", tp))
			}
		}
	}

	return errs
}

func validateChecklist(items []ChecklistImport) []error {
	var errs []error
	for i, it := range items {
		prefix := fmt.Sprintf("checklist[%d]", i)
		if it.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if it.Order != nil && *it.Order < 0 {
			errs = append(errs, fmt.Errorf("%s.order must be >= 0", prefix))
		}
	}
	return errs
}

func validateHolidays(holidays []HolidayImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, h := range holidays {
		prefix := fmt.Sprintf("holidays[%d]", i)
		if h.Date == "" {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
			continue
		}
		if _, err := time.Parse(domain.DateLayout, h.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, h.Date))
			continue
		}
		if seen[h.Date] {
			errs = append(errs, fmt.Errorf("%s.date: duplicate date %q", prefix, h.Date))
		}
		seen[h.Date] = true
	}
	return errs
}

func validateTeam(members []MemberImport) []error {
	var errs []error
	ids := make(map[string]bool)
	for i, m := range members {
		prefix := fmt.Sprintf("team[%d]", i)
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[m.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, m.ID))
		} else {
			ids[m.ID] = true
		}
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}
	return errs
}

func validateWorks(works []WorkImport) []error {
	var errs []error
	ids := make(map[string]bool)
	for i, w := range works {
		prefix := fmt.Sprintf("works[%d]", i)
		if w.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[w.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, w.ID))
		} else {
			ids[w.ID] = true
		}
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateOptionalDate(prefix+".deadline", w.Deadline)...)
	}
	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}

// RoleWarnings lists template task roles outside domain.ValidRoles. Unknown
// roles still import; they simply never match a checklist section rule.
func RoleWarnings(schema *CatalogSchema) []string {
	unknown := make(map[string]bool)
	for _, t := range schema.Templates {
		for _, task := range t.Tasks {
			if task.Role != "" && !domain.ValidRoles[task.Role] {
				unknown[task.Role] = true
			}
		}
	}
	warnings := make([]string, 0, len(unknown))
	for role := range unknown {
		warnings = append(warnings, fmt.Sprintf("unknown role %q", role))
	}
	sort.Strings(warnings)
	return warnings
}
