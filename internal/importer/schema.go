package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the top-level structure of a bureau catalog import file.
// Files may be JSON or YAML; field names are the same in both.
type CatalogSchema struct {
	BureauID  string            `json:"bureau_id" yaml:"bureau_id"`
	Templates []TemplateImport  `json:"templates" yaml:"templates"`
	Checklist []ChecklistImport `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	Holidays  []HolidayImport   `json:"holidays,omitempty" yaml:"holidays,omitempty"`
	Team      []MemberImport    `json:"team,omitempty" yaml:"team,omitempty"`
	Works     []WorkImport      `json:"works,omitempty" yaml:"works,omitempty"`
}

// TemplateImport defines a planning template and its tasks. ID is optional;
// a UUID is generated when it is empty.
type TemplateImport struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	IsDefault   bool         `json:"is_default,omitempty" yaml:"is_default,omitempty"`
	Tasks       []TaskImport `json:"tasks" yaml:"tasks"`
}

// TaskImport defines one template task.
type TaskImport struct {
	Name             string  `json:"name" yaml:"name"`
	Description      *string `json:"description,omitempty" yaml:"description,omitempty"`
	Role             string  `json:"role" yaml:"role"`
	Category         string  `json:"category,omitempty" yaml:"category,omitempty"`
	TMinusWorkdays   int     `json:"t_minus_workdays" yaml:"t_minus_workdays"`
	DurationWorkdays *int    `json:"duration_workdays,omitempty" yaml:"duration_workdays,omitempty"`
	IsMilestone      bool    `json:"is_milestone,omitempty" yaml:"is_milestone,omitempty"`
	IsRequired       *bool   `json:"is_required,omitempty" yaml:"is_required,omitempty"`
	Order            *int    `json:"order,omitempty" yaml:"order,omitempty"`
}

// ChecklistImport defines one checklist catalog item.
type ChecklistImport struct {
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Section     string  `json:"section,omitempty" yaml:"section,omitempty"`
	IsRequired  *bool   `json:"is_required,omitempty" yaml:"is_required,omitempty"`
	Order       *int    `json:"order,omitempty" yaml:"order,omitempty"`
}

type HolidayImport struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

type MemberImport struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Initials    string `json:"initials,omitempty" yaml:"initials,omitempty"`
	AvatarColor string `json:"avatar_color,omitempty" yaml:"avatar_color,omitempty"`
}

type WorkImport struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Deadline *string `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// LoadCatalogSchema reads and parses a catalog import file. The format is
// chosen by extension: .yaml and .yml are YAML, anything else JSON.
func LoadCatalogSchema(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema CatalogSchema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing yaml catalog file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing catalog file: %w", err)
		}
	}
	return &schema, nil
}
