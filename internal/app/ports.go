package app

import (
	"context"

	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/importer"
)

type BackplanningUseCase interface {
	GenerateBackplanning(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type WorkloadUseCase interface {
	GetWorkload(ctx context.Context, req WorkloadRequest) (*WorkloadResponse, error)
}

type SavePlanUseCase interface {
	SavePlan(ctx context.Context, req SavePlanRequest) (*SavePlanResult, error)
}

type ImportCatalogUseCase interface {
	ImportCatalog(ctx context.Context, filePath string) (*ImportResult, error)
	ImportCatalogFromSchema(ctx context.Context, schema *importer.CatalogSchema) (*ImportResult, error)
}

type PlanQueryUseCase interface {
	GetPlan(ctx context.Context, workID string) (*StoredPlan, error)
}

type CatalogQueryUseCase interface {
	ListTemplates(ctx context.Context, bureauID string) ([]*domain.Template, error)
	GetTemplate(ctx context.Context, templateID string) (*TemplateDetail, error)
	ListTeam(ctx context.Context, bureauID string) ([]domain.PersonSummary, error)
	ListHolidays(ctx context.Context, bureauID string, year int) ([]domain.Holiday, error)
}
