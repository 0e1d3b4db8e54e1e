package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto o compra.
type CreateExpenseRequest struct {
	Category    string          `json:"category" validate:"required"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Date        *time.Time      `json:"date"` // default: hoy
}

// UpdateExpenseRequest entrada para actualizar un gasto.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category"`
	Supplier    *string          `json:"supplier"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	UserID         string          `json:"user_id"`
	Category       string          `json:"category"`
	Supplier       string          `json:"supplier"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
