package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/dto"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// QuotationHandler maneja las peticiones HTTP para cotizaciones.
type QuotationHandler struct {
	uc *usecase.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *usecase.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create godoc
// @Summary      Emitir cotización desde una oportunidad
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuotationRequest  true  "Oportunidad a cotizar"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetOrganizationID(c), GetUserID(c), isAdmin(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cotización por ID
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuotationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetOrganizationID(c), GetUserID(c), isAdmin(c))
	if err != nil {
		return mapError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.QuotationResponse
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetOrganizationID(c), GetUserID(c), isAdmin(c), limit, offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuotationStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateQuotationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), GetOrganizationID(c), GetUserID(c), isAdmin(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar PDF de la cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	filename, content, err := h.uc.GeneratePDF(c.Params("id"), GetOrganizationID(c), GetUserID(c), isAdmin(c))
	if err != nil {
		return mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
