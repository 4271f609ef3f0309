package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// BidHandler maneja el agregado Bid: CRUD, listado y transiciones de estado
// (protegido).
type BidHandler struct {
	uc *usecase.BidUseCase
}

// NewBidHandler construye el handler.
func NewBidHandler(uc *usecase.BidUseCase) *BidHandler {
	return &BidHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bid
// @Tags         bids
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveBidRequest  true  "Datos del bid"
// @Success      201   {object}  dto.BidResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bids [post]
func (h *BidHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveBidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), Subject(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar bids visibles
// @Tags         bids
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Número, estudio o cliente"
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.BidListResponse
// @Router       /api/bids [get]
func (h *BidHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(Subject(c), c.Query("search"), c.Query("status"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un bid
// @Tags         bids
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bid"
// @Success      200  {object}  dto.BidResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bids/{id} [get]
func (h *BidHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(Subject(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar bid (solo en draft)
// @Tags         bids
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bid"
// @Param        body  body  dto.SaveBidRequest  true  "Datos del bid"
// @Success      200   {object}  dto.BidResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bids/{id} [put]
func (h *BidHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveBidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), Subject(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Transición de estado del bid
// @Tags         bids
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bid"
// @Param        body  body  dto.StatusChangeRequest  true  "Estado destino y datos requeridos"
// @Success      200   {object}  dto.BidResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bids/{id}/status [put]
func (h *BidHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.StatusChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.ChangeStatus(c.Context(), Subject(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatusByNumber godoc
// @Summary      Transición de estado resolviendo por número de bid
// @Tags         bids
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        bidNumber  path  int  true  "Número de bid"
// @Param        body       body  dto.StatusChangeRequest  true  "Estado destino"
// @Success      200        {object}  dto.BidResponse
// @Router       /api/bids/number/{bidNumber}/status [put]
func (h *BidHandler) ChangeStatusByNumber(c *fiber.Ctx) error {
	number, err := c.ParamsInt("bidNumber")
	if err != nil || number <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "número de bid inválido"})
	}
	var in dto.StatusChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ChangeStatusByNumber(c.Context(), Subject(c), number, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
