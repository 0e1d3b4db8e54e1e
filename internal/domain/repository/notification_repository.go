package repository

import "github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByUser(userID, organizationID string, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id, userID string) error
}
