package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// TicketRepository define el puerto de persistencia para Ticket.
type TicketRepository interface {
	Create(ticket *entity.Ticket) error
	GetByID(id, organizationID string) (*entity.Ticket, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Ticket, error)
	Update(ticket *entity.Ticket) error
	SoftDelete(id, organizationID string) error
}
