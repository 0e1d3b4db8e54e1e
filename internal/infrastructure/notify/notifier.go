// Package notify implementa el canal de avisos al usuario: siempre persiste la
// notificación in-app y, si hay SMTP configurado, además envía un correo.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/pipeline"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/repository"
	"github.com/sitesgtech-app/crm-gtech-sub000/pkg/config"
)

var _ pipeline.Notifier = (*Notifier)(nil)

// Notifier persiste notificaciones y opcionalmente las reenvía por correo.
// SMTP_HOST vacío desactiva el correo; la notificación in-app siempre queda.
type Notifier struct {
	repo   repository.NotificationRepository
	users  repository.UserRepository
	dialer *gomail.Dialer
	from   string
}

// New construye el notificador. Con cfg.Host vacío solo hay canal in-app.
func New(repo repository.NotificationRepository, users repository.UserRepository, cfg config.SMTPConfig) *Notifier {
	n := &Notifier{repo: repo, users: users}
	if cfg.Host != "" {
		n.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		n.from = cfg.From
	}
	return n
}

// Notify registra la notificación para el usuario y envía el correo si el canal
// está configurado. Devuelve error para que el caller decida qué registrar;
// nunca debe usarse para abortar la operación principal.
func (n *Notifier) Notify(organizationID, userID, title, message, kind string) error {
	if err := n.repo.Create(&entity.Notification{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		UserID:         userID,
		Title:          title,
		Message:        message,
		Kind:           kind,
		Read:           false,
		CreatedAt:      time.Now(),
	}); err != nil {
		return fmt.Errorf("guardar notificación: %w", err)
	}

	if n.dialer == nil {
		return nil
	}
	user, err := n.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("buscar destinatario: %w", err)
	}
	if user == nil || user.Email == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", title)
	m.SetBody("text/html", fmt.Sprintf("<h3>%s</h3><p>%s</p>", title, message))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
