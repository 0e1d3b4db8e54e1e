package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// QuotationRepository define el puerto de persistencia para Quotation.
type QuotationRepository interface {
	Create(q *entity.Quotation) error
	GetByID(id, organizationID string) (*entity.Quotation, error)
	// ListByOrganization lista cotizaciones; ownerID vacío lista toda la
	// organización, no vacío solo las de oportunidades de ese dueño.
	ListByOrganization(organizationID, ownerID string, limit, offset int) ([]*entity.Quotation, error)
	UpdateStatus(id, organizationID, status string) error
	// NextNumber devuelve el siguiente consecutivo de cotización de la
	// organización (1 para la primera).
	NextNumber(organizationID string) (int, error)
}
