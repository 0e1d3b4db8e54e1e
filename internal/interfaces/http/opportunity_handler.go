package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/pipeline"
)

// OpportunityHandler maneja las peticiones HTTP del pipeline de oportunidades.
type OpportunityHandler struct {
	uc *pipeline.UseCase
}

// NewOpportunityHandler construye el handler.
func NewOpportunityHandler(uc *pipeline.UseCase) *OpportunityHandler {
	return &OpportunityHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oportunidad
// @Description  Crea una oportunidad referenciando un cliente existente o creando uno en línea en la misma transacción.
// @Tags         opportunities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOpportunityRequest  true  "Datos de la oportunidad"
// @Success      201   {object}  dto.OpportunityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deals [post]
func (h *OpportunityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), actor(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar oportunidades
// @Description  Admin ve toda la organización; vendedor solo sus oportunidades.
// @Tags         opportunities
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.OpportunityListResponse
// @Router       /api/deals [get]
func (h *OpportunityHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), actor(c), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener oportunidad por ID
// @Tags         opportunities
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oportunidad"
// @Success      200  {object}  dto.OpportunityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deals/{id} [get]
func (h *OpportunityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar oportunidad
// @Description  Actualiza campos editables y recalcula precio, margen y monto. La etapa no cambia por esta vía.
// @Tags         opportunities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la oportunidad"
// @Param        body  body  dto.UpdateOpportunityRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OpportunityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deals/{id} [put]
func (h *OpportunityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOpportunityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// ChangeStage godoc
// @Summary      Mover oportunidad de etapa
// @Description  Acepta la etiqueta del Kanban o el código de persistencia. Mover a Perdida exige motivo.
// @Tags         opportunities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la oportunidad"
// @Param        body  body  dto.ChangeStageRequest  true  "Etapa destino"
// @Success      200   {object}  dto.OpportunityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/stage [patch]
func (h *OpportunityHandler) ChangeStage(c *fiber.Ctx) error {
	var in dto.ChangeStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Stage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage es requerido"})
	}
	out, err := h.uc.ChangeStage(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Breakdown godoc
// @Summary      Desglose de utilidad de la oportunidad
// @Description  Base sin IVA, retenciones, utilidad neta y efectivo a recibir según el sector.
// @Tags         opportunities
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la oportunidad"
// @Success      200  {object}  pricing.Breakdown
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/breakdown [get]
func (h *OpportunityHandler) Breakdown(c *fiber.Ctx) error {
	out, err := h.uc.Breakdown(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar oportunidad (borrado lógico)
// @Tags         opportunities
// @Security     Bearer
// @Param        id  path  string  true  "ID de la oportunidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deals/{id} [delete]
func (h *OpportunityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actor(c), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
