package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/azenterprise-api/internal/application/billing"
	"github.com/jhoicas/azenterprise-api/internal/application/dto"
)

// InvoiceHandler facturas GST (protegido).
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// NextNumber GET /api/invoices/next/number
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	out, err := h.uc.PeekNextNumber(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura
// @Description  Sin invoiceNo se asigna el siguiente correlativo AZES{YYYY}{MM}{NN}.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceRequest  true  "factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/invoices?limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Invoice deleted successfully"})
}

// DownloadPDF godoc
// @Summary      PDF de una factura guardada
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return attachment(c, "application/pdf", filename, pdf)
}

// PreviewPDF POST /api/invoices/generate-pdf (no guarda la factura)
func (h *InvoiceHandler) PreviewPDF(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	pdf, filename, err := h.pdf.PreviewInvoicePDF(c.UserContext(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return attachment(c, "application/pdf", filename, pdf)
}

// Publish POST /api/invoices/:id/publish
func (h *InvoiceHandler) Publish(c *fiber.Ctx) error {
	out, err := h.pdf.PublishInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ExportXML GET /api/invoices/:id/xml
// Responde 304 si If-None-Match coincide con el ETag del voucher.
func (h *InvoiceHandler) ExportXML(c *fiber.Ctx) error {
	body, etag, filename, err := h.pdf.ExportInvoiceXML(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderETag, etag)
	if match := c.Get(fiber.HeaderIfNoneMatch); match != "" && match == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	return attachment(c, "application/xml; charset=utf-8", filename, body)
}
