package entity

import "time"

// Estados y prioridades de tickets de soporte.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketClosed     = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Ticket representa un caso de soporte asociado a un cliente.
type Ticket struct {
	ID             string
	OrganizationID string
	ClientID       string
	AssigneeID     string // usuario asignado (puede estar vacío)
	Subject        string
	Description    string
	TicketStatus   string // open | in_progress | closed
	Priority       string
	Status         string // active | deleted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
