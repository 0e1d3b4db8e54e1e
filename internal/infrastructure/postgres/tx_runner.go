package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/pipeline"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ pipeline.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPipeline inicia una transacción, ejecuta fn con los repos del pipeline
// atados a la tx y hace Commit o Rollback. Lo usa el alta de oportunidades con
// cliente en línea: cliente, oportunidad y actividad inicial son un todo.
func (r *TxRunner) RunPipeline(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	oppRepo repository.OpportunityRepository,
	activityRepo repository.ActivityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	clientRepo := NewClientRepository(tx)
	oppRepo := NewOpportunityRepository(tx)
	activityRepo := NewActivityRepository(tx)

	if err := fn(clientRepo, oppRepo, activityRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
