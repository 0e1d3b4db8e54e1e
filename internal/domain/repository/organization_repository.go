package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// OrganizationRepository define el puerto de persistencia para Organization.
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	GetByNIT(nit string) (*entity.Organization, error)
}
