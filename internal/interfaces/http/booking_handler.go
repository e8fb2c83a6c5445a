package http

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	appbooking "github.com/jhoicas/azenterprise-api/internal/application/booking"
	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// BookingHandler alta pública de reservas y su gestión desde el panel.
type BookingHandler struct {
	uc *appbooking.BookingUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *appbooking.BookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar reserva con documentos
// @Tags         bookings
// @Accept       multipart/form-data
// @Produce      json
// @Param        name             formData  string  true  "nombre"
// @Param        phone            formData  string  true  "teléfono"
// @Param        email            formData  string  true  "email"
// @Param        address          formData  string  true  "dirección"
// @Param        requirement      formData  string  true  "requerimiento"
// @Param        preferredDate    formData  string  true  "fecha preferida"
// @Param        aadhar           formData  file    true  "Aadhar"
// @Param        electricityBill  formData  file    true  "Electricity Bill"
// @Param        bankPassbook     formData  file    true  "Bank Passbook"
// @Success      201  {object}  dto.BookingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bookings [post]
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
			return h.tooLarge(c)
		}
		return badBody(c)
	}
	in := dto.CreateBookingRequest{
		Name:          formValue(form, "name"),
		Phone:         formValue(form, "phone"),
		Email:         formValue(form, "email"),
		Address:       formValue(form, "address"),
		Requirement:   formValue(form, "requirement"),
		PreferredDate: formValue(form, "preferredDate"),
	}

	docs := make(map[string]appbooking.Upload, len(entity.BookingDocTypes))
	for _, dt := range entity.BookingDocTypes {
		files := form.File[dt]
		if len(files) == 0 {
			continue
		}
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer f.Close()
		docs[dt] = appbooking.Upload{Filename: fh.Filename, Size: fh.Size, Body: f}
	}

	out, err := h.uc.Create(c.UserContext(), in, docs)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *BookingHandler) tooLarge(c *fiber.Ctx) error {
	msg := fmt.Sprintf(appbooking.MsgFileTooLarge, h.uc.MaxUploadBytes()>>20)
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// List GET /api/bookings?search=&status=&limit=&offset=
func (h *BookingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/bookings/:id
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus PUT /api/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/bookings/:id
func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Booking deleted successfully"})
}

// Document GET /api/bookings/:id/documents/:docType
func (h *BookingHandler) Document(c *fiber.Ctx) error {
	out, err := h.uc.DocumentURL(c.UserContext(), c.Params("id"), c.Params("docType"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Slip GET /api/bookings/:id/slip
func (h *BookingHandler) Slip(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Slip(c.UserContext(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return attachment(c, "application/pdf", filename, pdf)
}
