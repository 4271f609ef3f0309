package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// AccessHandler maneja solicitudes y concesiones de acceso a bids ajenos
// (protegido).
type AccessHandler struct {
	uc *usecase.AccessUseCase
}

// NewAccessHandler construye el handler.
func NewAccessHandler(uc *usecase.AccessUseCase) *AccessHandler {
	return &AccessHandler{uc: uc}
}

// Check godoc
// @Summary      Verificar acceso del caller a un bid
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {object}  dto.AccessCheckResponse
// @Router       /api/bids/{id}/access [get]
func (h *AccessHandler) Check(c *fiber.Ctx) error {
	out, err := h.uc.Check(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Request godoc
// @Summary      Solicitar acceso a un bid ajeno
// @Tags         access
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccessRequestCreate  true  "Bid y motivo"
// @Success      201   {object}  dto.AccessRequestView
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/access-requests [post]
func (h *AccessHandler) Request(c *fiber.Ctx) error {
	var in dto.AccessRequestCreate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BidID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bid_id es requerido"})
	}
	out, err := h.uc.Request(Subject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPending godoc
// @Summary      Bandeja de solicitudes pendientes del equipo del caller
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccessRequestView
// @Router       /api/access-requests/pending [get]
func (h *AccessHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(Subject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByBid godoc
// @Summary      Solicitudes de acceso de un bid
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {array}  dto.AccessRequestView
// @Router       /api/bids/{id}/access-requests [get]
func (h *AccessHandler) ListByBid(c *fiber.Ctx) error {
	out, err := h.uc.ListRequests(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Grant godoc
// @Summary      Aprobar una solicitud de acceso
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      204 "sin contenido"
// @Failure      409 {object}  dto.ErrorResponse
// @Router       /api/access-requests/{id}/grant [post]
func (h *AccessHandler) Grant(c *fiber.Ctx) error {
	if err := h.uc.Grant(c.Context(), Subject(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deny godoc
// @Summary      Rechazar una solicitud de acceso
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      204 "sin contenido"
// @Router       /api/access-requests/{id}/deny [post]
func (h *AccessHandler) Deny(c *fiber.Ctx) error {
	if err := h.uc.Deny(c.Context(), Subject(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Revoke godoc
// @Summary      Revocar la concesión de un usuario sobre un bid
// @Tags         access
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RevokeAccessRequest  true  "Bid y usuario"
// @Success      204   "sin contenido"
// @Router       /api/revoke-access [post]
func (h *AccessHandler) Revoke(c *fiber.Ctx) error {
	var in dto.RevokeAccessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BidID == "" || in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bid_id y user_id son requeridos"})
	}
	if err := h.uc.Revoke(Subject(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListGrants godoc
// @Summary      Concesiones vigentes de un bid
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {array}  dto.AccessGrantView
// @Router       /api/bids/{id}/access-grants [get]
func (h *AccessHandler) ListGrants(c *fiber.Ctx) error {
	out, err := h.uc.ListGrants(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
