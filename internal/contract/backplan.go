package contract

import (
	"time"

	"github.com/alexanderramin/backplan/internal/app"
)

type GenerateRequest = app.GenerateRequest

func NewGenerateRequest(deadline time.Time, templateID, bureauID string) GenerateRequest {
	return app.NewGenerateRequest(deadline, templateID, bureauID)
}

type GenerateResponse = app.GenerateResponse

type WorkloadRequest = app.WorkloadRequest

type WorkloadResponse = app.WorkloadResponse

type SavePlanRequest = app.SavePlanRequest

type SavePlanResult = app.SavePlanResult

type ImportResult = app.ImportResult

type StoredPlan = app.StoredPlan

type TemplateDetail = app.TemplateDetail
