package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para registrar un empleado.
type CreateEmployeeRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	DPI      string          `json:"dpi" validate:"required"`
	Position string          `json:"position"`
	Salary   decimal.Decimal `json:"salary"`
	HireDate *time.Time      `json:"hire_date"` // default: hoy
}

// UpdateEmployeeRequest entrada para actualizar un empleado.
type UpdateEmployeeRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Position *string          `json:"position"`
	Salary   *decimal.Decimal `json:"salary"`
	Active   *bool            `json:"active"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Name           string          `json:"name"`
	DPI            string          `json:"dpi"`
	Position       string          `json:"position"`
	Salary         decimal.Decimal `json:"salary"`
	HireDate       time.Time       `json:"hire_date"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
