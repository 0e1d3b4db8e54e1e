package usecase

import (
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
)

// NotificationUseCase casos de uso para notificaciones in-app del usuario.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List lista las notificaciones del usuario autenticado, más recientes primero.
func (uc *NotificationUseCase) List(userID, organizationID string, limit, offset int) ([]*dto.NotificationResponse, error) {
	list, err := uc.repo.ListByUser(userID, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, &dto.NotificationResponse{
			ID:        n.ID,
			UserID:    n.UserID,
			Title:     n.Title,
			Message:   n.Message,
			Kind:      n.Kind,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación del usuario como leída.
func (uc *NotificationUseCase) MarkRead(id, userID string) error {
	return uc.repo.MarkRead(id, userID)
}
