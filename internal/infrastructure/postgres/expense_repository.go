package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, organization_id, user_id, category, supplier, description, amount, date, status, created_at, updated_at`

// Create persiste un nuevo gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.OrganizationID, expense.UserID, expense.Category,
		expense.Supplier, expense.Description, expense.Amount, expense.Date,
		expense.Status, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID dentro de la organización.
func (r *ExpenseRepo) GetByID(id, organizationID string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND organization_id = $2`
	var e entity.Expense
	err := r.q.QueryRow(context.Background(), query, id, organizationID).Scan(
		&e.ID, &e.OrganizationID, &e.UserID, &e.Category, &e.Supplier, &e.Description,
		&e.Amount, &e.Date, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// ListByOrganization lista gastos activos, más recientes primero.
func (r *ExpenseRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses WHERE organization_id = $1 AND status = 'active'
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.UserID, &e.Category, &e.Supplier, &e.Description,
			&e.Amount, &e.Date, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza un gasto.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	query := `
		UPDATE expenses
		SET category = $3, supplier = $4, description = $5, amount = $6, date = $7, updated_at = $8
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.OrganizationID, expense.Category, expense.Supplier,
		expense.Description, expense.Amount, expense.Date, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// SoftDelete marca un gasto como eliminado.
func (r *ExpenseRepo) SoftDelete(id, organizationID string) error {
	query := `
		UPDATE expenses SET status = 'deleted', updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
