package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock inicia en 0 y
// solo cambia vía movimientos.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
}

// RegisterMovementRequest entrada o salida de stock.
type RegisterMovementRequest struct {
	Type      string          `json:"type" validate:"required"` // IN | OUT
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Reference string          `json:"reference"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	Stock          decimal.Decimal `json:"stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	CreatedAt time.Time       `json:"created_at"`
}
