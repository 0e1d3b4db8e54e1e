package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// ClientHandler maneja las peticiones HTTP para Client (protegido).
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
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
// @Summary      Obtener cliente por ID
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetOrganizationID(c))
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), GetOrganizationID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente (borrado lógico)
// @Tags         clients
// @Security     Bearer
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetOrganizationID(c)); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
