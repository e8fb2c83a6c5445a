package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/azenterprise-api/internal/application/analytics"
)

// DashboardHandler métricas del panel.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve conteos de reservas por estado, facturas, reservas
// recientes y la serie de los últimos seis meses.
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
