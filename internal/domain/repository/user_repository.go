package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndOrganization(email, organizationID string) (*entity.User, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.User, error)
}
