package dto

import "github.com/shopspring/decimal"

// StageSummaryResponse conteo y monto por etapa del pipeline.
type StageSummaryResponse struct {
	Stage        string          `json:"stage"`
	StageDisplay string          `json:"stage_display"`
	Count        int             `json:"count"`
	Amount       decimal.Decimal `json:"amount"`
}

// MonthlySalesResponse ventas ganadas por mes.
type MonthlySalesResponse struct {
	Month  string          `json:"month"` // YYYY-MM
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// TopClientResponse cliente por monto ganado.
type TopClientResponse struct {
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	WonCount   int             `json:"won_count"`
	WonAmount  decimal.Decimal `json:"won_amount"`
}
