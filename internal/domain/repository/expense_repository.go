package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id, organizationID string) (*entity.Expense, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Expense, error)
	Update(expense *entity.Expense) error
	SoftDelete(id, organizationID string) error
}
