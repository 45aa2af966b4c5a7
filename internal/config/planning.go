package config

import (
	"fmt"

	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/scheduler"
)

// Weekly task counts at which the workload view turns yellow and red.
const (
	DefaultWeeklyWarning = 10
	DefaultWeeklyDanger  = 15
)

// PlanningConfig tunes conflict thresholds, checklist placement and the
// weekly load colouring of the workload view.
type PlanningConfig struct {
	WarningThreshold     int                     `koanf:"warning_threshold"`
	DangerThreshold      int                     `koanf:"danger_threshold"`
	WeeklyWarning        int                     `koanf:"weekly_warning"`
	WeeklyDanger         int                     `koanf:"weekly_danger"`
	ChecklistWindow      int                     `koanf:"checklist_window"`
	DefaultChecklistRole string                  `koanf:"default_checklist_role"`
	SectionRules         []scheduler.SectionRule `koanf:"section_rules"`
}

func (c *PlanningConfig) SetDefaults() {
	th := scheduler.DefaultThresholds()
	if c.WarningThreshold == 0 {
		c.WarningThreshold = th.Warning
	}
	if c.DangerThreshold == 0 {
		c.DangerThreshold = th.Danger
	}
	if c.WeeklyWarning == 0 {
		c.WeeklyWarning = DefaultWeeklyWarning
	}
	if c.WeeklyDanger == 0 {
		c.WeeklyDanger = max(DefaultWeeklyDanger, c.WeeklyWarning)
	}
	if c.ChecklistWindow == 0 {
		c.ChecklistWindow = scheduler.DefaultChecklistWindow
	}
	if c.DefaultChecklistRole == "" {
		c.DefaultChecklistRole = domain.RoleTenderManager
	}
	if len(c.SectionRules) == 0 {
		c.SectionRules = scheduler.DefaultSectionRules()
	}
}

func (c PlanningConfig) Validate() error {
	if c.WarningThreshold < 1 {
		return fmt.Errorf("warning_threshold must be >= 1, got %d", c.WarningThreshold)
	}
	if c.DangerThreshold < c.WarningThreshold {
		return fmt.Errorf("danger_threshold (%d) must be >= warning_threshold (%d)", c.DangerThreshold, c.WarningThreshold)
	}
	if c.WeeklyWarning < 1 {
		return fmt.Errorf("weekly_warning must be >= 1, got %d", c.WeeklyWarning)
	}
	if c.WeeklyDanger < c.WeeklyWarning {
		return fmt.Errorf("weekly_danger (%d) must be >= weekly_warning (%d)", c.WeeklyDanger, c.WeeklyWarning)
	}
	if c.ChecklistWindow < 1 {
		return fmt.Errorf("checklist_window must be >= 1, got %d", c.ChecklistWindow)
	}
	if c.DefaultChecklistRole == "" {
		return fmt.Errorf("default_checklist_role is required")
	}
	for i, r := range c.SectionRules {
		if r.Role == "" {
			return fmt.Errorf("section_rules[%d].role is required", i)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("section_rules[%d].keywords must not be empty", i)
		}
	}
	return nil
}

func (c PlanningConfig) Thresholds() scheduler.Thresholds {
	return scheduler.Thresholds{Warning: c.WarningThreshold, Danger: c.DangerThreshold}
}

func (c PlanningConfig) ChecklistPolicy() scheduler.ChecklistPolicy {
	return scheduler.ChecklistPolicy{
		Window:      c.ChecklistWindow,
		Rules:       c.SectionRules,
		DefaultRole: c.DefaultChecklistRole,
	}
}
