package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// InvoiceHandler maneja la reconciliación de factura y el submit que completa
// el bid (protegido). Las pantallas de factura operan por número de bid.
type InvoiceHandler struct {
	uc *usecase.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// GetByNumber godoc
// @Summary      Datos de facturación del bid (costos calculados al leer)
// @Tags         invoice
// @Security     Bearer
// @Produce      json
// @Param        bidNumber  path  int  true  "Número de bid"
// @Success      200        {object}  dto.InvoiceDataResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/invoice/{bidNumber} [get]
func (h *InvoiceHandler) GetByNumber(c *fiber.Ctx) error {
	number, err := c.ParamsInt("bidNumber")
	if err != nil || number <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "número de bid inválido"})
	}
	out, err := h.uc.GetByNumber(Subject(c), number)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar cabeceras de factura y CPIs finales (transaccional)
// @Tags         invoice
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        bidNumber  path  int  true  "Número de bid"
// @Param        body       body  dto.SaveInvoiceRequest  true  "Cabeceras y CPIs finales"
// @Success      204        "sin contenido"
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/invoice/{bidNumber}/save [post]
func (h *InvoiceHandler) Save(c *fiber.Ctx) error {
	number, err := c.ParamsInt("bidNumber")
	if err != nil || number <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "número de bid inválido"})
	}
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SaveByNumber(c.Context(), Subject(c), number, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit godoc
// @Summary      Enviar factura: el bid pasa a completed
// @Tags         invoice
// @Security     Bearer
// @Produce      json
// @Param        bidId  path  string  true  "ID del bid"
// @Success      200    {object}  dto.SubmitInvoiceResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/invoice/{bidId}/submit [post]
func (h *InvoiceHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Context(), Subject(c), c.Params("bidId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
