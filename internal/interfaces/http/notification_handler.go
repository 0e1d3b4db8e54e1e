package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// NotificationHandler maneja las notificaciones in-app del usuario autenticado.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones del usuario
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetUserID(c), GetOrganizationID(c), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Params("id"), GetUserID(c)); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
