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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, organization_id, name, dpi, position, salary, hire_date, active, status, created_at, updated_at`

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.OrganizationID, employee.Name, employee.DPI,
		employee.Position, employee.Salary, employee.HireDate, employee.Active,
		employee.Status, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID dentro de la organización.
func (r *EmployeeRepo) GetByID(id, organizationID string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND organization_id = $2`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id, organizationID).Scan(
		&e.ID, &e.OrganizationID, &e.Name, &e.DPI, &e.Position, &e.Salary,
		&e.HireDate, &e.Active, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// ListByOrganization lista empleados activos por nombre.
func (r *EmployeeRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees WHERE organization_id = $1 AND status = 'active'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(
			&e.ID, &e.OrganizationID, &e.Name, &e.DPI, &e.Position, &e.Salary,
			&e.HireDate, &e.Active, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza un empleado.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees
		SET name = $3, dpi = $4, position = $5, salary = $6, hire_date = $7, active = $8, updated_at = $9
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.OrganizationID, employee.Name, employee.DPI,
		employee.Position, employee.Salary, employee.HireDate, employee.Active,
		employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// SoftDelete marca un empleado como eliminado.
func (r *EmployeeRepo) SoftDelete(id, organizationID string) error {
	query := `
		UPDATE employees SET status = 'deleted', updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
