package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id, organizationID string) (*entity.Employee, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	SoftDelete(id, organizationID string) error
}
