package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// ProposalHandler maneja las propuestas comerciales del bid (protegido).
type ProposalHandler struct {
	uc *usecase.ProposalUseCase
}

// NewProposalHandler construye el handler.
func NewProposalHandler(uc *usecase.ProposalUseCase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

// Create godoc
// @Summary      Generar propuesta desde las asignaciones del bid
// @Tags         proposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bid"
// @Param        body  body  dto.CreateProposalRequest  true  "Margen"
// @Success      201   {object}  dto.ProposalResponse
// @Router       /api/bids/{id}/proposals [post]
func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProposalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), Subject(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByBid godoc
// @Summary      Propuestas de un bid
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {array}  dto.ProposalListItem
// @Router       /api/bids/{id}/proposals [get]
func (h *ProposalHandler) ListByBid(c *fiber.Ctx) error {
	out, err := h.uc.ListByBid(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de propuesta con precios y totales
// @Tags         proposals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la propuesta"
// @Success      200  {object}  dto.ProposalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proposals/{id} [get]
func (h *ProposalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar propuesta
// @Tags         proposals
// @Security     Bearer
// @Param        id  path  string  true  "ID de la propuesta"
// @Success      204 "sin contenido"
// @Router       /api/proposals/{id} [delete]
func (h *ProposalHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(Subject(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
