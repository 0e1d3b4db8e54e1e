package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOpportunityRequest entrada para crear una oportunidad.
//
// El cliente se referencia por ClientID o se crea en línea con Client (ambos a
// la vez es un error de validación). De ProfitMargin y UnitPrice exactamente
// uno es el campo autoritativo: si viene ProfitMargin el precio se deriva; si
// viene solo UnitPrice, el margen se deriva. Amount siempre se recalcula.
type CreateOpportunityRequest struct {
	Title         string                `json:"title" validate:"required,min=1,max=200"`
	ClientID      string                `json:"client_id"`
	Client        *CreateClientRequest  `json:"client"` // alta de cliente en línea
	Sector        string                `json:"sector"` // Private | Government (default: sector del cliente)
	Quantity      decimal.Decimal       `json:"quantity"`
	UnitCost      decimal.Decimal       `json:"unit_cost"`
	ProfitMargin  *decimal.Decimal      `json:"profit_margin"`
	UnitPrice     *decimal.Decimal      `json:"unit_price"`
	Probability   int                   `json:"probability" validate:"min=0,max=100"`
	ExpectedClose *time.Time            `json:"expected_close_date"`
	Notes         string                `json:"notes"`
}

// UpdateOpportunityRequest entrada para actualización de campos. No existe un
// campo de etapa: la etapa solo cambia vía el endpoint de cambio de etapa.
type UpdateOpportunityRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=200"`
	ClientID      *string          `json:"client_id"`
	Sector        *string          `json:"sector"`
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	ProfitMargin  *decimal.Decimal `json:"profit_margin"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Probability   *int             `json:"probability" validate:"omitempty,min=0,max=100"`
	ExpectedClose *time.Time       `json:"expected_close_date"`
	Notes         *string          `json:"notes"`
	OwnerID       *string          `json:"owner_id"` // reasignación (solo admin)
}

// ChangeStageRequest entrada para mover una oportunidad de etapa. Stage acepta
// la etiqueta del Kanban ("Negociación") o el código ("NEGOTIATION"). Reason es
// obligatorio al mover a Perdida.
type ChangeStageRequest struct {
	Stage  string `json:"stage" validate:"required"`
	Reason string `json:"reason"`
}

// OpportunityResponse salida de una oportunidad.
type OpportunityResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	OwnerID        string          `json:"owner_id"`
	ClientID       string          `json:"client_id"`
	Title          string          `json:"title"`
	Stage          string          `json:"stage"`         // código de persistencia
	StageDisplay   string          `json:"stage_display"` // etiqueta del Kanban
	Sector         string          `json:"sector"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
	Amount         decimal.Decimal `json:"amount"`
	Probability    int             `json:"probability"`
	ExpectedClose  *time.Time      `json:"expected_close_date,omitempty"`
	Notes          string          `json:"notes"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OpportunityListResponse lista paginada de oportunidades.
type OpportunityListResponse struct {
	Items []OpportunityResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
