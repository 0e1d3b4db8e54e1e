package postgres

import (
	"context"
	"fmt"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository (usable con pool o tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, organization_id, user_id, title, message, kind, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.OrganizationID, n.UserID, n.Title, n.Message, n.Kind, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser lista notificaciones del usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(userID, organizationID string, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, organization_id, user_id, title, message, kind, read, created_at
		FROM notifications
		WHERE user_id = $1 AND organization_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, userID, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(
			&n.ID, &n.OrganizationID, &n.UserID, &n.Title, &n.Message, &n.Kind,
			&n.Read, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación del usuario como leída.
func (r *NotificationRepo) MarkRead(id, userID string) error {
	query := `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`
	_, err := r.q.Exec(context.Background(), query, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
