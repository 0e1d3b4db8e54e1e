package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa el registro de un empleado (datos para planilla).
type Employee struct {
	ID             string
	OrganizationID string
	Name           string
	DPI            string // documento de identificación
	Position       string
	Salary         decimal.Decimal
	HireDate       time.Time
	Active         bool
	Status         string // active | deleted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
