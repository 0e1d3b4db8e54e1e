package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// ActivityRepository define el puerto de persistencia para Activity
// (bitácora append-only: solo Create y lecturas).
type ActivityRepository interface {
	Create(activity *entity.Activity) error
	ListByOpportunity(opportunityID, organizationID string, limit, offset int) ([]*entity.Activity, error)
}
