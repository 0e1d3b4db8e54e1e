package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación de TicketRepository (usable con pool o tx).
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

const ticketColumns = `id, organization_id, client_id, assignee_id, subject, description,
	ticket_status, priority, status, created_at, updated_at`

// Create persiste un nuevo ticket.
func (r *TicketRepo) Create(ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.OrganizationID, ticket.ClientID, ticket.AssigneeID,
		ticket.Subject, ticket.Description, ticket.TicketStatus, ticket.Priority,
		ticket.Status, ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID dentro de la organización.
func (r *TicketRepo) GetByID(id, organizationID string) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 AND organization_id = $2`
	var t entity.Ticket
	err := r.q.QueryRow(context.Background(), query, id, organizationID).Scan(
		&t.ID, &t.OrganizationID, &t.ClientID, &t.AssigneeID, &t.Subject, &t.Description,
		&t.TicketStatus, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// ListByOrganization lista tickets activos, abiertos primero y más recientes arriba.
func (r *TicketRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE organization_id = $1 AND status = 'active'
		ORDER BY (ticket_status = 'closed'), created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(
			&t.ID, &t.OrganizationID, &t.ClientID, &t.AssigneeID, &t.Subject, &t.Description,
			&t.TicketStatus, &t.Priority, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza un ticket.
func (r *TicketRepo) Update(ticket *entity.Ticket) error {
	query := `
		UPDATE tickets
		SET client_id = $3, assignee_id = $4, subject = $5, description = $6,
		    ticket_status = $7, priority = $8, updated_at = $9
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.OrganizationID, ticket.ClientID, ticket.AssigneeID,
		ticket.Subject, ticket.Description, ticket.TicketStatus, ticket.Priority,
		ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

// SoftDelete marca un ticket como eliminado.
func (r *TicketRepo) SoftDelete(id, organizationID string) error {
	query := `
		UPDATE tickets SET status = 'deleted', updated_at = now()
		WHERE id = $1 AND organization_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return nil
}
