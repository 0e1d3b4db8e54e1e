package dto

import "time"

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Company string `json:"company"`
	NIT     string `json:"nit" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Sector  string `json:"sector"` // Private | Government
}

// UpdateClientRequest entrada para actualizar un cliente (campos opcionales).
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Company *string `json:"company"`
	NIT     *string `json:"nit"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Sector  *string `json:"sector"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	NIT            string    `json:"nit"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Sector         string    `json:"sector"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
