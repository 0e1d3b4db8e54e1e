package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
// Todas las lecturas van acotadas por organización: un ID de otra organización
// se comporta igual que un ID inexistente.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id, organizationID string) (*entity.Client, error)
	GetByOrganizationAndNIT(organizationID, nit string) (*entity.Client, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	SoftDelete(id, organizationID string) error
}
