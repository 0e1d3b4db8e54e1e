package dto

import "time"

// CreateActivityRequest entrada para registrar una actividad.
type CreateActivityRequest struct {
	OpportunityID string `json:"opportunity_id" validate:"required"`
	Type          string `json:"type" validate:"required"` // call | email | meeting | note
	Description   string `json:"description" validate:"required"`
}

// ActivityResponse salida de una actividad (inmutable).
type ActivityResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	OpportunityID  string    `json:"opportunity_id"`
	ClientID       string    `json:"client_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}
