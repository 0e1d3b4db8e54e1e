package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// TicketHandler maneja las peticiones HTTP para tickets de soporte.
type TicketHandler struct {
	uc *usecase.TicketUseCase
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *usecase.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ticket
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "Datos del ticket"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetOrganizationID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ticket por ID
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetOrganizationID(c))
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tickets
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.TicketResponse
// @Router       /api/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ticket
// @Tags         tickets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ticket"
// @Param        body  body  dto.UpdateTicketRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TicketResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTicketRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), GetOrganizationID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ticket (borrado lógico)
// @Tags         tickets
// @Security     Bearer
// @Param        id  path  string  true  "ID del ticket"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetOrganizationID(c)); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
