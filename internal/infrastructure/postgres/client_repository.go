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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, organization_id, name, company, nit, email, phone, address, sector, status, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.Name, &c.Company, &c.NIT, &c.Email, &c.Phone,
		&c.Address, &c.Sector, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.OrganizationID, client.Name, client.Company, client.NIT,
		client.Email, client.Phone, client.Address, client.Sector, client.Status,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID dentro de la organización.
func (r *ClientRepo) GetByID(id, organizationID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND organization_id = $2`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id, organizationID))
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// GetByOrganizationAndNIT obtiene un cliente activo por NIT dentro de la organización.
func (r *ClientRepo) GetByOrganizationAndNIT(organizationID, nit string) (*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE organization_id = $1 AND nit = $2 AND status = 'active'`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, organizationID, nit))
	if err != nil {
		return nil, fmt.Errorf("get client by nit: %w", err)
	}
	return c, nil
}

// ListByOrganization lista clientes activos de la organización con paginación.
func (r *ClientRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients WHERE organization_id = $1 AND status = 'active'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.OrganizationID, &c.Name, &c.Company, &c.NIT, &c.Email, &c.Phone,
			&c.Address, &c.Sector, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $3, company = $4, nit = $5, email = $6, phone = $7, address = $8,
		    sector = $9, updated_at = $10
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.OrganizationID, client.Name, client.Company, client.NIT,
		client.Email, client.Phone, client.Address, client.Sector, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// SoftDelete marca un cliente como eliminado.
func (r *ClientRepo) SoftDelete(id, organizationID string) error {
	query := `
		UPDATE clients SET status = 'deleted', updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
