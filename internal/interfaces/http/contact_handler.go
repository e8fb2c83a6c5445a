package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/azenterprise-api/internal/application/contact"
	"github.com/jhoicas/azenterprise-api/internal/application/dto"
)

// ContactHandler formulario de contacto del sitio público.
type ContactHandler struct {
	uc *contact.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *contact.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Submit POST /api/contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Submit(c.UserContext(), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/contact (protegido)
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
