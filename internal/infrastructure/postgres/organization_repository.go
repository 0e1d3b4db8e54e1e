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

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación de OrganizationRepository (usable con pool o tx).
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, nit, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		org.ID, org.Name, org.NIT, org.Email, org.Phone, org.Address,
		org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	query := `
		SELECT id, name, nit, email, phone, address, created_at, updated_at
		FROM organizations WHERE id = $1`
	var o entity.Organization
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Name, &o.NIT, &o.Email, &o.Phone, &o.Address, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// GetByNIT obtiene una organización por NIT.
func (r *OrganizationRepo) GetByNIT(nit string) (*entity.Organization, error) {
	query := `
		SELECT id, name, nit, email, phone, address, created_at, updated_at
		FROM organizations WHERE nit = $1`
	var o entity.Organization
	err := r.q.QueryRow(context.Background(), query, nit).Scan(
		&o.ID, &o.Name, &o.NIT, &o.Email, &o.Phone, &o.Address, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization by nit: %w", err)
	}
	return &o, nil
}
