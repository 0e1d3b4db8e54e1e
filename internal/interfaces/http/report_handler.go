package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
)

// ReportHandler maneja los reportes de ventas (solo lectura).
type ReportHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.AnalyticsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ownerScope aplica la regla de alcance: admin agrega la organización entera,
// vendedor solo ve lo suyo.
func ownerScope(c *fiber.Ctx) string {
	if isAdmin(c) {
		return ""
	}
	return GetUserID(c)
}

// PipelineSummary godoc
// @Summary      Resumen del pipeline por etapa
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StageSummaryResponse
// @Router       /api/reports/pipeline [get]
func (h *ReportHandler) PipelineSummary(c *fiber.Ctx) error {
	out, err := h.uc.PipelineSummary(c.Context(), GetOrganizationID(c), ownerScope(c))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// MonthlySales godoc
// @Summary      Ventas ganadas por mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses hacia atrás"  default(12)
// @Success      200     {array}  dto.MonthlySalesResponse
// @Router       /api/reports/monthly-sales [get]
func (h *ReportHandler) MonthlySales(c *fiber.Ctx) error {
	months := c.QueryInt("months", 12)
	out, err := h.uc.MonthlyWonSales(c.Context(), GetOrganizationID(c), ownerScope(c), months)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// TopClients godoc
// @Summary      Clientes con mayor monto ganado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {array}  dto.TopClientResponse
// @Router       /api/reports/top-clients [get]
func (h *ReportHandler) TopClients(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	out, err := h.uc.TopClients(c.Context(), GetOrganizationID(c), limit)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}
