package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// OpportunityRepository define el puerto de persistencia para Opportunity.
//
// Scoping: GetByID exige organización; ListByOrganization acepta ownerID
// opcional (vacío = toda la organización, solo para admins). El borrado es
// siempre lógico: los listados filtran status = 'active'.
type OpportunityRepository interface {
	Create(opp *entity.Opportunity) error
	GetByID(id, organizationID string) (*entity.Opportunity, error)
	ListByOrganization(organizationID, ownerID string, limit, offset int) ([]*entity.Opportunity, error)
	Update(opp *entity.Opportunity) error
	SoftDelete(id, organizationID string) error
}
