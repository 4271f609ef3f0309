package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// AllocationHandler maneja el grid de asignación de campo (protegido).
type AllocationHandler struct {
	uc *usecase.AllocationUseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *usecase.AllocationUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// GetGrid godoc
// @Summary      Grid de asignación de campo del bid
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {object}  dto.AllocationGridResponse
// @Router       /api/bids/{id}/field-allocations [get]
func (h *AllocationHandler) GetGrid(c *fiber.Ctx) error {
	out, err := h.uc.GetGrid(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Asignar muestra a una celda (advierte sobre-asignación)
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bid"
// @Param        body  body  dto.SetAllocationRequest  true  "Celda y asignación"
// @Success      200   {object}  dto.SetAllocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bids/{id}/field-allocations [put]
func (h *AllocationHandler) Set(c *fiber.Ctx) error {
	var in dto.SetAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PartnerID == "" || in.AudienceID == "" || in.Country == "" || in.LOI <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "partner_id, audience_id, country y loi son requeridos"})
	}
	out, err := h.uc.SetAllocation(Subject(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
