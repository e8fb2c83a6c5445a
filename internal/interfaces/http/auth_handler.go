package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/azenterprise-api/internal/application/auth"
	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain"
)

// AuthHandler alta del administrador y login con OTP.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// authError traduce los errores de auth a los mensajes que muestra el panel.
func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidSetupKey):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Invalid setup key"})
	case errors.Is(err, auth.ErrAdminExists):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ADMIN_EXISTS", Message: "Admin already exists. Creation disabled."})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid credentials"})
	case errors.Is(err, auth.ErrInvalidOTP):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_OTP", Message: "Invalid OTP"})
	case errors.Is(err, domain.ErrOTPExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "OTP_EXPIRED", Message: "OTP has expired"})
	}
	return errorResponse(c, err)
}

// CreateAdmin godoc
// @Summary      Crear el primer administrador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdminRequest  true  "email, password, setupKey"
// @Success      201   {object}  dto.AdminResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/create [post]
func (h *AuthHandler) CreateAdmin(c *fiber.Ctx) error {
	var in dto.CreateAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateAdmin(c.UserContext(), in)
	if err != nil {
		return authError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Paso 1: password, envía OTP por email
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(out)
}

// VerifyOTP godoc
// @Summary      Paso 2: OTP, devuelve JWT
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyOTPRequest  true  "email, otp"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.VerifyOTP(c.UserContext(), in)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(out)
}

// Verify GET /api/admin/verify (protegido)
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.UserContext(), GetAdminID(c))
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(out)
}
