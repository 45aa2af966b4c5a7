package domain

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

type TaskKind string

const (
	KindTask      TaskKind = "task"
	KindChecklist TaskKind = "checklist"
)

// Well-known team roles. Roles are free-form keys; these are the ones the
// checklist heuristic resolves to by default.
const (
	RoleTenderManager = "tendermanager"
	RoleWriter        = "writer"
	RoleCalculator    = "calculator"
	RoleReviewer      = "reviewer"
)

// DefaultCategory is used when a template task or checklist item has no
// category or section of its own.
const DefaultCategory = "general"

// ValidRoles is the set of roles known to the catalog importer. Unknown roles
// are accepted with a warning rather than rejected.
var ValidRoles = map[string]bool{
	"tendermanager": true, "writer": true, "calculator": true,
	"reviewer": true, "designer": true, "sales": true,
	"coordinator": true, "client_contact": true,
}
