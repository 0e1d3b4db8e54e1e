package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuotationRequest entrada para emitir una cotización desde una
// oportunidad. Los montos se toman de la oportunidad en ese momento.
type CreateQuotationRequest struct {
	OpportunityID string `json:"opportunity_id" validate:"required"`
	Description   string `json:"description"`
	ValidDays     int    `json:"valid_days"` // default 15
}

// UpdateQuotationStatusRequest cambia el estado de una cotización.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required"` // draft | sent | accepted | rejected
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	OpportunityID  string          `json:"opportunity_id"`
	ClientID       string          `json:"client_id"`
	Number         string          `json:"number"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	ValidDays      int             `json:"valid_days"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}
