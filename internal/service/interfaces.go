package service

import "github.com/alexanderramin/backplan/internal/app"

// BackplanningService generates back-plans and reports team workload.
type BackplanningService interface {
	app.BackplanningUseCase
	app.WorkloadUseCase
}

// PlanService persists accepted plans and reads them back.
type PlanService interface {
	app.SavePlanUseCase
	app.PlanQueryUseCase
}

// CatalogService loads and lists a bureau's planning catalog.
type CatalogService interface {
	app.ImportCatalogUseCase
	app.CatalogQueryUseCase
}
