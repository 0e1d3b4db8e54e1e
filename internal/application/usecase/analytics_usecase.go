package usecase

import (
	"context"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/stage"
)

// AnalyticsUseCase casos de uso de reportes de ventas (solo lectura).
type AnalyticsUseCase struct {
	repo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo}
}

// PipelineSummary resume el pipeline activo por etapa. Los vendedores solo ven
// sus propias oportunidades; ownerID vacío agrega toda la organización.
func (uc *AnalyticsUseCase) PipelineSummary(ctx context.Context, organizationID, ownerID string) ([]dto.StageSummaryResponse, error) {
	results, err := uc.repo.PipelineSummary(ctx, organizationID, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StageSummaryResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.StageSummaryResponse{
			Stage:        r.Stage,
			StageDisplay: stage.Display(stage.Stage(r.Stage)),
			Count:        r.Count,
			Amount:       r.Amount,
		})
	}
	return out, nil
}

// MonthlyWonSales agrega ventas ganadas por mes, los últimos `months` meses.
func (uc *AnalyticsUseCase) MonthlyWonSales(ctx context.Context, organizationID, ownerID string, months int) ([]dto.MonthlySalesResponse, error) {
	if months <= 0 {
		months = 12
	}
	results, err := uc.repo.MonthlyWonSales(ctx, organizationID, ownerID, months)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlySalesResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.MonthlySalesResponse{
			Month:  r.Month,
			Count:  r.Count,
			Amount: r.Amount,
		})
	}
	return out, nil
}

// TopClients lista los clientes con mayor monto ganado.
func (uc *AnalyticsUseCase) TopClients(ctx context.Context, organizationID string, limit int) ([]dto.TopClientResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	results, err := uc.repo.TopClients(ctx, organizationID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopClientResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.TopClientResponse{
			ClientID:   r.ClientID,
			ClientName: r.ClientName,
			WonCount:   r.WonCount,
			WonAmount:  r.WonAmount,
		})
	}
	return out, nil
}
