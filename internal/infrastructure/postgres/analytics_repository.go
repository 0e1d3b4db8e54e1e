package postgres

import (
	"context"
	"fmt"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación de AnalyticsRepository. Solo lectura, agregados
// calculados en SQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// PipelineSummary agrega conteo y monto de oportunidades activas por etapa.
// ownerID vacío agrega toda la organización.
func (r *AnalyticsRepo) PipelineSummary(ctx context.Context, organizationID, ownerID string) ([]repository.StageSummaryResult, error) {
	query := `
		SELECT stage, COUNT(*), COALESCE(SUM(amount), 0)
		FROM opportunities
		WHERE organization_id = $1 AND status = 'active' AND ($2 = '' OR owner_id = $2)
		GROUP BY stage
		ORDER BY stage`
	rows, err := r.q.Query(ctx, query, organizationID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pipeline summary: %w", err)
	}
	defer rows.Close()
	var list []repository.StageSummaryResult
	for rows.Next() {
		var s repository.StageSummaryResult
		if err := rows.Scan(&s.Stage, &s.Count, &s.Amount); err != nil {
			return nil, fmt.Errorf("scan stage summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// MonthlyWonSales agrega ventas ganadas por mes (YYYY-MM) de los últimos
// `months` meses, usando la fecha del último cambio de la oportunidad.
func (r *AnalyticsRepo) MonthlyWonSales(ctx context.Context, organizationID, ownerID string, months int) ([]repository.MonthlySalesResult, error) {
	query := `
		SELECT to_char(date_trunc('month', updated_at), 'YYYY-MM') AS month,
		       COUNT(*), COALESCE(SUM(amount), 0)
		FROM opportunities
		WHERE organization_id = $1 AND status = 'active' AND stage = 'CLOSED_WON'
		  AND ($2 = '' OR owner_id = $2)
		  AND updated_at >= date_trunc('month', now()) - ($3 || ' months')::interval
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, organizationID, ownerID, months)
	if err != nil {
		return nil, fmt.Errorf("monthly won sales: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthlySalesResult
	for rows.Next() {
		var m repository.MonthlySalesResult
		if err := rows.Scan(&m.Month, &m.Count, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// TopClients lista los clientes con mayor monto ganado.
func (r *AnalyticsRepo) TopClients(ctx context.Context, organizationID string, limit int) ([]repository.TopClientResult, error) {
	query := `
		SELECT c.id, c.name, COUNT(o.id), COALESCE(SUM(o.amount), 0) AS won
		FROM opportunities o
		JOIN clients c ON c.id = o.client_id
		WHERE o.organization_id = $1 AND o.status = 'active' AND o.stage = 'CLOSED_WON'
		GROUP BY c.id, c.name
		ORDER BY won DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, organizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("top clients: %w", err)
	}
	defer rows.Close()
	var list []repository.TopClientResult
	for rows.Next() {
		var t repository.TopClientResult
		if err := rows.Scan(&t.ClientID, &t.ClientName, &t.WonCount, &t.WonAmount); err != nil {
			return nil, fmt.Errorf("scan top client: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
