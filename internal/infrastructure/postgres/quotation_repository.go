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

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `id, organization_id, opportunity_id, client_id, number, date, description,
	quantity, unit_price, subtotal, tax, total, valid_days, status, created_at, updated_at`

// Create persiste una nueva cotización.
func (r *QuotationRepo) Create(q *entity.Quotation) error {
	query := `
		INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		q.ID, q.OrganizationID, q.OpportunityID, q.ClientID, q.Number, q.Date, q.Description,
		q.Quantity, q.UnitPrice, q.Subtotal, q.Tax, q.Total, q.ValidDays, q.Status,
		q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID dentro de la organización.
func (r *QuotationRepo) GetByID(id, organizationID string) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1 AND organization_id = $2`
	var q entity.Quotation
	err := r.q.QueryRow(context.Background(), query, id, organizationID).Scan(
		&q.ID, &q.OrganizationID, &q.OpportunityID, &q.ClientID, &q.Number, &q.Date, &q.Description,
		&q.Quantity, &q.UnitPrice, &q.Subtotal, &q.Tax, &q.Total, &q.ValidDays, &q.Status,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return &q, nil
}

// ListByOrganization lista cotizaciones de la organización, más recientes
// primero. Con ownerID no vacío se filtra por el dueño actual de la oportunidad
// que originó cada cotización.
func (r *QuotationRepo) ListByOrganization(organizationID, ownerID string, limit, offset int) ([]*entity.Quotation, error) {
	query := `
		SELECT q.id, q.organization_id, q.opportunity_id, q.client_id, q.number, q.date, q.description,
			q.quantity, q.unit_price, q.subtotal, q.tax, q.total, q.valid_days, q.status, q.created_at, q.updated_at
		FROM quotations q
		JOIN opportunities o ON o.id = q.opportunity_id
		WHERE q.organization_id = $1 AND ($2 = '' OR o.owner_id = $2)
		ORDER BY q.created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, organizationID, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		var q entity.Quotation
		if err := rows.Scan(
			&q.ID, &q.OrganizationID, &q.OpportunityID, &q.ClientID, &q.Number, &q.Date, &q.Description,
			&q.Quantity, &q.UnitPrice, &q.Subtotal, &q.Tax, &q.Total, &q.ValidDays, &q.Status,
			&q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de una cotización.
func (r *QuotationRepo) UpdateStatus(id, organizationID, status string) error {
	query := `
		UPDATE quotations SET status = $3, updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, organizationID, status)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	return nil
}

// NextNumber devuelve el siguiente consecutivo de cotización de la organización.
// El contador vive en su propia tabla y el upsert lo hace atómico.
func (r *QuotationRepo) NextNumber(organizationID string) (int, error) {
	query := `
		INSERT INTO quotation_counters (organization_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (organization_id)
		DO UPDATE SET last_number = quotation_counters.last_number + 1
		RETURNING last_number`
	var n int
	if err := r.q.QueryRow(context.Background(), query, organizationID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next quotation number: %w", err)
	}
	return n, nil
}
