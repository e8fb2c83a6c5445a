package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	appbooking "github.com/jhoicas/azenterprise-api/internal/application/booking"
)

// CustomerHandler clientes derivados de las reservas (protegido).
type CustomerHandler struct {
	uc *appbooking.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *appbooking.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List GET /api/customers?search=
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("search"), pageFromQuery(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByEmail GET /api/customers/:email
func (h *CustomerHandler) GetByEmail(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.Get(c.UserContext(), email)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
