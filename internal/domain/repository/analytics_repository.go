package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StageSummaryResult conteo y monto de oportunidades activas por etapa.
type StageSummaryResult struct {
	Stage  string
	Count  int
	Amount decimal.Decimal
}

// MonthlySalesResult ventas ganadas agrupadas por mes (YYYY-MM).
type MonthlySalesResult struct {
	Month  string
	Count  int
	Amount decimal.Decimal
}

// TopClientResult cliente ordenado por monto ganado.
type TopClientResult struct {
	ClientID   string
	ClientName string
	WonCount   int
	WonAmount  decimal.Decimal
}

// AnalyticsRepository define las consultas de solo lectura para reportes de
// ventas. ownerID vacío agrega toda la organización (solo admins).
type AnalyticsRepository interface {
	PipelineSummary(ctx context.Context, organizationID, ownerID string) ([]StageSummaryResult, error)
	MonthlyWonSales(ctx context.Context, organizationID, ownerID string, months int) ([]MonthlySalesResult, error)
	TopClients(ctx context.Context, organizationID string, limit int) ([]TopClientResult, error)
}
