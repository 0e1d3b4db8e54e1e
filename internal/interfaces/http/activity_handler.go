package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// ActivityHandler maneja la bitácora de actividades.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar actividad sobre una oportunidad
// @Tags         activities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActivityRequest  true  "Datos de la actividad"
// @Success      201   {object}  dto.ActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetOrganizationID(c), GetUserID(c), isAdmin(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByOpportunity godoc
// @Summary      Listar actividades de una oportunidad
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la oportunidad"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}   dto.ActivityResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/activities [get]
func (h *ActivityHandler) ListByOpportunity(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByOpportunity(GetOrganizationID(c), GetUserID(c), isAdmin(c), c.Params("id"), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
