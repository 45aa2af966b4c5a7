package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/google/uuid"
)

// Catalog is a converted catalog file, ready for persistence.
type Catalog struct {
	BureauID  string
	Templates []*domain.Template
	Tasks     []*domain.TemplateTask
	Checklist []*domain.ChecklistTemplateItem
	Holidays  []domain.Holiday
	Members   []*domain.PersonSummary
	Works     []*domain.Work
}

// Convert transforms a validated CatalogSchema into domain objects.
// Call ValidateCatalogSchema first; Convert assumes the schema is valid.
func Convert(schema *CatalogSchema) (*Catalog, error) {
	now := time.Now().UTC()
	bureauID := strings.TrimSpace(schema.BureauID)
	cat := &Catalog{BureauID: bureauID}

	for _, t := range schema.Templates {
		tpl := &domain.Template{
			ID:          domain.CoalesceStr(t.ID, uuid.New().String()),
			BureauID:    bureauID,
			Name:        t.Name,
			Description: t.Description,
			IsDefault:   t.IsDefault,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		cat.Templates = append(cat.Templates, tpl)

		for i, task := range t.Tasks {
			cat.Tasks = append(cat.Tasks, &domain.TemplateTask{
				ID:               uuid.New().String(),
				TemplateID:       tpl.ID,
				Name:             task.Name,
				Description:      task.Description,
				Role:             task.Role,
				Category:         domain.CoalesceStr(task.Category, domain.DefaultCategory),
				TMinusWorkdays:   task.TMinusWorkdays,
				DurationWorkdays: domain.ValueOr(1, task.DurationWorkdays),
				IsMilestone:      task.IsMilestone,
				IsRequired:       domain.ValueOr(true, task.IsRequired),
				Order:            domain.ValueOr(i, task.Order),
			})
		}
	}

	for i, it := range schema.Checklist {
		cat.Checklist = append(cat.Checklist, &domain.ChecklistTemplateItem{
			ID:          uuid.New().String(),
			BureauID:    bureauID,
			Name:        it.Name,
			Description: it.Description,
			Section:     strings.TrimSpace(it.Section),
			IsRequired:  domain.ValueOr(true, it.IsRequired),
			IsActive:    true,
			Order:       domain.ValueOr(i, it.Order),
		})
	}

	for _, h := range schema.Holidays {
		d, err := domain.ParseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday: %w", err)
		}
		cat.Holidays = append(cat.Holidays, domain.Holiday{BureauID: bureauID, Date: d, Name: h.Name})
	}

	for _, m := range schema.Team {
		cat.Members = append(cat.Members, &domain.PersonSummary{
			ID:          m.ID,
			BureauID:    bureauID,
			Name:        m.Name,
			Initials:    domain.CoalesceStr(m.Initials, initialsOf(m.Name)),
			AvatarColor: domain.CoalesceStr(m.AvatarColor, domain.DefaultAvatarColor),
		})
	}

	for _, w := range schema.Works {
		cat.Works = append(cat.Works, &domain.Work{
			ID:        w.ID,
			BureauID:  bureauID,
			Name:      w.Name,
			Deadline:  parseOptionalDate(w.Deadline),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return cat, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}

// initialsOf takes the first letter of the first and last word of name,
// upper-cased: "Rick van Dam" becomes "RD".
func initialsOf(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	first := []rune(fields[0])[:1]
	if len(fields) == 1 {
		return strings.ToUpper(string(first))
	}
	last := []rune(fields[len(fields)-1])[:1]
	return strings.ToUpper(string(first) + string(last))
}
