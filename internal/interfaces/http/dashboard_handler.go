package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// DashboardHandler expone las métricas agregadas (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics godoc
// @Summary      Métricas del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.Metrics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
