package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ repository.OpportunityRepository = (*OpportunityRepo)(nil)

// OpportunityRepo implementación de OpportunityRepository (usable con pool o tx).
type OpportunityRepo struct {
	q Querier
}

// NewOpportunityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOpportunityRepository(q Querier) *OpportunityRepo {
	return &OpportunityRepo{q: q}
}

const opportunityColumns = `id, organization_id, owner_id, client_id, title, stage, sector,
	quantity, unit_cost, unit_price, profit_margin, amount, probability,
	expected_close, notes, status, created_at, updated_at`

func scanOpportunity(row pgx.Row) (*entity.Opportunity, error) {
	var o entity.Opportunity
	err := row.Scan(
		&o.ID, &o.OrganizationID, &o.OwnerID, &o.ClientID, &o.Title, &o.Stage, &o.Sector,
		&o.Quantity, &o.UnitCost, &o.UnitPrice, &o.ProfitMargin, &o.Amount, &o.Probability,
		&o.ExpectedClose, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// Create persiste una nueva oportunidad.
func (r *OpportunityRepo) Create(opp *entity.Opportunity) error {
	query := `
		INSERT INTO opportunities (` + opportunityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		opp.ID, opp.OrganizationID, opp.OwnerID, opp.ClientID, opp.Title, opp.Stage, opp.Sector,
		opp.Quantity, opp.UnitCost, opp.UnitPrice, opp.ProfitMargin, opp.Amount, opp.Probability,
		opp.ExpectedClose, opp.Notes, opp.Status, opp.CreatedAt, opp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert opportunity: %w", err)
	}
	return nil
}

// GetByID obtiene una oportunidad por ID dentro de la organización.
func (r *OpportunityRepo) GetByID(id, organizationID string) (*entity.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1 AND organization_id = $2`
	o, err := scanOpportunity(r.q.QueryRow(context.Background(), query, id, organizationID))
	if err != nil {
		return nil, fmt.Errorf("get opportunity: %w", err)
	}
	return o, nil
}

// ListByOrganization lista oportunidades activas. ownerID vacío trae toda la
// organización; no vacío, solo las del responsable.
func (r *OpportunityRepo) ListByOrganization(organizationID, ownerID string, limit, offset int) ([]*entity.Opportunity, error) {
	query := `
		SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE organization_id = $1 AND status = 'active' AND ($2 = '' OR owner_id = $2)
		ORDER BY updated_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, organizationID, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Opportunity
	for rows.Next() {
		var o entity.Opportunity
		if err := rows.Scan(
			&o.ID, &o.OrganizationID, &o.OwnerID, &o.ClientID, &o.Title, &o.Stage, &o.Sector,
			&o.Quantity, &o.UnitCost, &o.UnitPrice, &o.ProfitMargin, &o.Amount, &o.Probability,
			&o.ExpectedClose, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan opportunity: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza una oportunidad completa (incluida la etapa).
func (r *OpportunityRepo) Update(opp *entity.Opportunity) error {
	query := `
		UPDATE opportunities
		SET owner_id = $3, client_id = $4, title = $5, stage = $6, sector = $7,
		    quantity = $8, unit_cost = $9, unit_price = $10, profit_margin = $11,
		    amount = $12, probability = $13, expected_close = $14, notes = $15,
		    updated_at = $16
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		opp.ID, opp.OrganizationID, opp.OwnerID, opp.ClientID, opp.Title, opp.Stage, opp.Sector,
		opp.Quantity, opp.UnitCost, opp.UnitPrice, opp.ProfitMargin, opp.Amount, opp.Probability,
		opp.ExpectedClose, opp.Notes, opp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	return nil
}

// SoftDelete marca una oportunidad como eliminada.
func (r *OpportunityRepo) SoftDelete(id, organizationID string) error {
	query := `
		UPDATE opportunities SET status = 'deleted', updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	return nil
}
