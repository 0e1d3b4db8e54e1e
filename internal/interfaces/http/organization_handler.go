package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// OrganizationHandler maneja las peticiones HTTP para Organization.
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear organización
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "Datos de la organización"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener organización por ID
// @Tags         organizations
// @Produce      json
// @Param        id   path  string  true  "ID de la organización"
// @Success      200  {object}  dto.OrganizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/organizations/{id} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
	}
	return c.JSON(out)
}
