package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto o compra de la organización.
type Expense struct {
	ID             string
	OrganizationID string
	UserID         string
	Category       string // compra, servicios, planilla, otros
	Supplier       string
	Description    string
	Amount         decimal.Decimal
	Date           time.Time
	Status         string // active | deleted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
