package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// EmployeeHandler maneja las peticiones HTTP para empleados (solo admin; el
// router monta RequireRole sobre este grupo).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
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
// @Summary      Obtener empleado por ID
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetOrganizationID(c))
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), GetOrganizationID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empleado no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empleado (borrado lógico)
// @Tags         employees
// @Security     Bearer
// @Param        id  path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetOrganizationID(c)); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
