package pipeline

import (
	"context"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// Actor es el usuario autenticado que ejecuta la operación (claims del JWT).
type Actor struct {
	UserID         string
	OrganizationID string
	Role           string
}

// IsAdmin indica si el actor puede ver y operar toda la organización.
func (a Actor) IsAdmin() bool { return a.Role == "admin" }

// TxRunner ejecuta una función dentro de una transacción con los repos del
// pipeline atados a ella. Lo usa Create para el alta en dos pasos (cliente en
// línea y luego oportunidad): si cualquiera de los dos falla, ninguno queda
// visible.
type TxRunner interface {
	RunPipeline(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		oppRepo repository.OpportunityRepository,
		activityRepo repository.ActivityRepository,
	) error) error
}

// Notifier es el canal lateral de avisos al usuario responsable. Best-effort:
// el caller captura y registra los errores, nunca los propaga.
type Notifier interface {
	Notify(organizationID, userID, title, message, kind string) error
}
