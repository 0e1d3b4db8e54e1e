package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// Product representa un producto del inventario. Stock solo cambia vía
// movimientos explícitos, nunca por edición directa.
type Product struct {
	ID             string
	OrganizationID string
	SKU            string
	Name           string
	Description    string
	Price          decimal.Decimal
	Cost           decimal.Decimal
	Stock          decimal.Decimal
	Status         string // active | deleted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// StockMovement registra una entrada o salida de inventario (append-only).
type StockMovement struct {
	ID             string
	OrganizationID string
	ProductID      string
	UserID         string
	Type           string // IN | OUT
	Quantity       decimal.Decimal
	Reference      string // documento de origen (compra, cotización, ajuste)
	CreatedAt      time.Time
}
