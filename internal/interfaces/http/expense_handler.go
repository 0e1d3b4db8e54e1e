package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// ExpenseHandler maneja las peticiones HTTP para gastos.
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Datos del gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener gasto por ID
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetOrganizationID(c))
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.UpdateExpenseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), GetOrganizationID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar gasto (borrado lógico)
// @Tags         expenses
// @Security     Bearer
// @Param        id  path  string  true  "ID del gasto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetOrganizationID(c)); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
