package dto

import "time"

// CreateTicketRequest entrada para crear un ticket de soporte.
type CreateTicketRequest struct {
	ClientID    string `json:"client_id" validate:"required"`
	Subject     string `json:"subject" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // low | medium | high (default medium)
	AssigneeID  string `json:"assignee_id"`
}

// UpdateTicketRequest entrada para actualizar un ticket.
type UpdateTicketRequest struct {
	Subject      *string `json:"subject" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description"`
	Priority     *string `json:"priority"`
	AssigneeID   *string `json:"assignee_id"`
	TicketStatus *string `json:"ticket_status"` // open | in_progress | closed
}

// TicketResponse salida de un ticket.
type TicketResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ClientID       string    `json:"client_id"`
	AssigneeID     string    `json:"assignee_id"`
	Subject        string    `json:"subject"`
	Description    string    `json:"description"`
	TicketStatus   string    `json:"ticket_status"`
	Priority       string    `json:"priority"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
