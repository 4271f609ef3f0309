package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// ResponseHandler maneja las respuestas de partners del bid (protegido).
type ResponseHandler struct {
	uc *usecase.ResponseUseCase
}

// NewResponseHandler construye el handler.
func NewResponseHandler(uc *usecase.ResponseUseCase) *ResponseHandler {
	return &ResponseHandler{uc: uc}
}

// Get godoc
// @Summary      Respuestas de partners del bid, con flags de completitud
// @Tags         responses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {object}  dto.ResponsesResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/bids/{id}/partner-responses [get]
func (h *ResponseHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetResponses(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardado masivo de respuestas (solo en draft)
// @Tags         responses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bid"
// @Param        body  body  dto.SaveResponsesRequest  true  "Respuestas keyed partner-loi"
// @Success      200   {object}  dto.ResponsesResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bids/{id}/partner-responses [put]
func (h *ResponseHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveResponsesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "responses no puede estar vacío"})
	}
	out, err := h.uc.SaveResponses(c.Context(), Subject(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
