package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
)

// DirectoryHandler maneja los catálogos que alimentan un bid: clientes,
// contactos de venta, vendor managers y partners (protegido).
type DirectoryHandler struct {
	uc *usecase.DirectoryUseCase
}

// NewDirectoryHandler construye el handler.
func NewDirectoryHandler(uc *usecase.DirectoryUseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

func pageFrom(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
}

// ── Clientes ──────────────────────────────────────────────────────────

// CreateClient crea un cliente (nombre único).
func (h *DirectoryHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.SaveClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateClient(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListClients lista clientes paginados.
func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	out, err := h.uc.ListClients(pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetClient obtiene un cliente por ID.
func (h *DirectoryHandler) GetClient(c *fiber.Ctx) error {
	out, err := h.uc.GetClient(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateClient actualiza un cliente.
func (h *DirectoryHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.SaveClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateClient(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteClient elimina un cliente.
func (h *DirectoryHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.uc.DeleteClient(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Contactos de venta ────────────────────────────────────────────────

// CreateSalesContact crea un contacto de ventas.
func (h *DirectoryHandler) CreateSalesContact(c *fiber.Ctx) error {
	var in dto.SaveSalesContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSalesContact(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSalesContacts lista contactos paginados.
func (h *DirectoryHandler) ListSalesContacts(c *fiber.Ctx) error {
	out, err := h.uc.ListSalesContacts(pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateSalesContact actualiza un contacto.
func (h *DirectoryHandler) UpdateSalesContact(c *fiber.Ctx) error {
	var in dto.SaveSalesContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateSalesContact(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteSalesContact elimina un contacto de ventas.
func (h *DirectoryHandler) DeleteSalesContact(c *fiber.Ctx) error {
	if err := h.uc.DeleteSalesContact(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Vendor managers ───────────────────────────────────────────────────

// CreateVendorManager crea un VM.
func (h *DirectoryHandler) CreateVendorManager(c *fiber.Ctx) error {
	var in dto.SaveVendorManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateVendorManager(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVendorManagers lista VMs paginados.
func (h *DirectoryHandler) ListVendorManagers(c *fiber.Ctx) error {
	out, err := h.uc.ListVendorManagers(pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateVendorManager actualiza un VM.
func (h *DirectoryHandler) UpdateVendorManager(c *fiber.Ctx) error {
	var in dto.SaveVendorManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateVendorManager(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteVendorManager elimina un VM.
func (h *DirectoryHandler) DeleteVendorManager(c *fiber.Ctx) error {
	if err := h.uc.DeleteVendorManager(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Partners ──────────────────────────────────────────────────────────

// CreatePartner crea un partner; el código Partner_N lo asigna la DB.
func (h *DirectoryHandler) CreatePartner(c *fiber.Ctx) error {
	var in dto.SavePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePartner(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPartners lista partners paginados.
func (h *DirectoryHandler) ListPartners(c *fiber.Ctx) error {
	out, err := h.uc.ListPartners(pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPartner obtiene un partner por ID.
func (h *DirectoryHandler) GetPartner(c *fiber.Ctx) error {
	out, err := h.uc.GetPartner(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePartner actualiza un partner (el código nunca cambia).
func (h *DirectoryHandler) UpdatePartner(c *fiber.Ctx) error {
	var in dto.SavePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdatePartner(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeletePartner elimina un partner.
func (h *DirectoryHandler) DeletePartner(c *fiber.Ctx) error {
	if err := h.uc.DeletePartner(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Países ────────────────────────────────────────────────────────────

// ListCountries lista el catálogo de países de referencia.
func (h *DirectoryHandler) ListCountries(c *fiber.Ctx) error {
	out, err := h.uc.ListCountries()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
