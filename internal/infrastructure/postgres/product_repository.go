package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, organization_id, sku, name, description, price, cost, stock, status, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Cost,
		&p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.OrganizationID, product.SKU, product.Name, product.Description,
		product.Price, product.Cost, product.Stock, product.Status,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro de la organización.
func (r *ProductRepo) GetByID(id, organizationID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND organization_id = $2`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id, organizationID))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByOrganizationAndSKU obtiene un producto activo por SKU dentro de la organización.
func (r *ProductRepo) GetByOrganizationAndSKU(organizationID, sku string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE organization_id = $1 AND sku = $2 AND status = 'active'`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, organizationID, sku))
	if err != nil {
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// ListByOrganization lista productos activos con paginación.
func (r *ProductRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE organization_id = $1 AND status = 'active'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Cost,
			&p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto (incluido stock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $3, name = $4, description = $5, price = $6, cost = $7, stock = $8, updated_at = $9
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.OrganizationID, product.SKU, product.Name, product.Description,
		product.Price, product.Cost, product.Stock, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SoftDelete marca un producto como eliminado.
func (r *ProductRepo) SoftDelete(id, organizationID string) error {
	query := `
		UPDATE products SET status = 'deleted', updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository (append-only).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, organization_id, product_id, user_id, type, quantity, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.OrganizationID, m.ProductID, m.UserID, m.Type, m.Quantity, m.Reference, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID, organizationID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, organization_id, product_id, user_id, type, quantity, reference, created_at
		FROM stock_movements
		WHERE product_id = $1 AND organization_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, productID, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.OrganizationID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity,
			&m.Reference, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
