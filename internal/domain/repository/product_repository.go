package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id, organizationID string) (*entity.Product, error)
	GetByOrganizationAndSKU(organizationID, sku string) (*entity.Product, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	SoftDelete(id, organizationID string) error
}

// StockMovementRepository define el puerto para movimientos de stock
// (append-only).
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	ListByProduct(productID, organizationID string, limit, offset int) ([]*entity.StockMovement, error)
}
