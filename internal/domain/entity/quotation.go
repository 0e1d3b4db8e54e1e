package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationDraft    = "draft"
	QuotationSent     = "sent"
	QuotationAccepted = "accepted"
	QuotationRejected = "rejected"
)

// Quotation representa una cotización generada a partir de una oportunidad.
// Los montos salen del motor de precios con los datos de la oportunidad en el
// momento de emitirla; no se recalculan si la oportunidad cambia después.
type Quotation struct {
	ID             string
	OrganizationID string
	OpportunityID  string
	ClientID       string
	Number         string // consecutivo legible: COT-000001
	Date           time.Time
	Description    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal // base sin IVA
	Tax            decimal.Decimal // IVA 12%
	Total          decimal.Decimal
	ValidDays      int
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
