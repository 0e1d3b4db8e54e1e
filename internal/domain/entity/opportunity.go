package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Opportunity representa una oportunidad de venta (deal) del pipeline Kanban.
//
// Campos derivados: UnitPrice sale de UnitCost y ProfitMargin vía la fórmula
// del motor de precios, y Amount == UnitPrice * Quantity. El controlador del
// pipeline es el único que recalcula estos campos; nunca se aceptan tal cual
// del cliente HTTP.
type Opportunity struct {
	ID             string
	OrganizationID string
	OwnerID        string // usuario responsable (exactamente uno)
	ClientID       string
	Title          string
	Stage          string // código de persistencia (stage.Stage)
	Sector         string // PRIVATE | GOVERNMENT
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	UnitPrice      decimal.Decimal
	ProfitMargin   decimal.Decimal // porcentaje, derivado
	Amount         decimal.Decimal // derivado: UnitPrice * Quantity
	Probability    int             // 0–100
	ExpectedClose  *time.Time
	Notes          string
	Status         string // active | deleted (borrado lógico)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
