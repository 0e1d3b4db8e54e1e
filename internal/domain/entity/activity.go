package entity

import "time"

// Tipos de actividad.
const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityNote    = "note"
	ActivityStage   = "stage_change"
)

// Activity es una entrada de bitácora append-only ligada a una oportunidad y su
// cliente. Nunca se actualiza después de creada.
type Activity struct {
	ID             string
	OrganizationID string
	OpportunityID  string
	ClientID       string
	UserID         string // responsable que registró la actividad
	Type           string
	Description    string
	CreatedAt      time.Time
}
