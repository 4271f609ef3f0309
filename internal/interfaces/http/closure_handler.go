package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// ClosureHandler maneja la reconciliación de cierre de campo (protegido).
type ClosureHandler struct {
	uc *usecase.ClosureUseCase
}

// NewClosureHandler construye el handler.
func NewClosureHandler(uc *usecase.ClosureUseCase) *ClosureHandler {
	return &ClosureHandler{uc: uc}
}

// Get godoc
// @Summary      Vista de cierre (solo celdas con campo asignado)
// @Tags         closure
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {object}  dto.ClosureView
// @Router       /api/bids/{id}/closure [get]
func (h *ClosureHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetClosure(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar cierre: entregas, métricas y fechas (transaccional)
// @Tags         closure
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bid"
// @Param        body  body  dto.SaveClosureRequest  true  "Datos de cierre"
// @Success      204   "sin contenido"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bids/{id}/closure [put]
func (h *ClosureHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveClosureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SaveClosure(c.Context(), Subject(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumen de cierre por partner
// @Tags         closure
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {object}  dto.ClosureSummaryResponse
// @Router       /api/bids/{id}/closure/summary [get]
func (h *ClosureHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
