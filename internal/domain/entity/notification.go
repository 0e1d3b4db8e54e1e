package entity

import "time"

// Tipos de notificación.
const (
	NotificationStageChanged = "stage_changed"
	NotificationDealCreated  = "deal_created"
	NotificationTicket       = "ticket"
	NotificationGeneric      = "generic"
)

// Notification es un aviso in-app dirigido a un usuario. El envío es
// best-effort: fallar al notificar nunca falla la operación principal.
type Notification struct {
	ID             string
	OrganizationID string
	UserID         string
	Title          string
	Message        string
	Kind           string
	Read           bool
	CreatedAt      time.Time
}
