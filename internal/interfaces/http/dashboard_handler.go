package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sedori-pro/internal/application/analytics"
)

// DashboardHandler maneja las peticiones del dashboard de beneficios (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de beneficios, serie mensual y variación mes a mes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        channel  query  string  false  "Filtrar por canal"
// @Success      200      {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), GetUserID(c), c.Query("channel"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe mensual de beneficios en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Param        channel  query  string  false  "Filtrar por canal"
// @Success      200      {file}  file
// @Router       /api/dashboard/report [get]
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	owner := c.Query("owner", GetUserID(c))
	data, err := h.uc.MonthlyReport(c.UserContext(), GetUserID(c), owner, c.Query("channel"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="informe-beneficios.pdf"`)
	return c.Send(data)
}
