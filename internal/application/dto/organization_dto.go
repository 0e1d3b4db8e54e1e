package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización (tenant).
type CreateOrganizationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	NIT     string `json:"nit" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NIT       string    `json:"nit"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
