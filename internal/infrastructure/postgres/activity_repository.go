package postgres

import (
	"context"
	"fmt"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación de ActivityRepository (usable con pool o tx).
// La bitácora es append-only: no hay UPDATE ni DELETE.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create persiste una nueva actividad.
func (r *ActivityRepo) Create(activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, organization_id, opportunity_id, client_id, user_id, type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		activity.ID, activity.OrganizationID, activity.OpportunityID, activity.ClientID,
		activity.UserID, activity.Type, activity.Description, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByOpportunity lista la bitácora de una oportunidad, más recientes primero.
func (r *ActivityRepo) ListByOpportunity(opportunityID, organizationID string, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT id, organization_id, opportunity_id, client_id, user_id, type, description, created_at
		FROM activities
		WHERE opportunity_id = $1 AND organization_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, opportunityID, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(
			&a.ID, &a.OrganizationID, &a.OpportunityID, &a.ClientID, &a.UserID,
			&a.Type, &a.Description, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
