package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/pkg/jwt"
)

// Locals keys del administrador autenticado.
const (
	LocalAdminID    = "admin_id"
	LocalAdminEmail = "admin_email"
)

// AuthMiddleware valida el Bearer Token JWT y deja AdminID y email en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "No token provided"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "No token provided"})
		}
		adminID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || adminID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Invalid or expired token"})
		}
		c.Locals(LocalAdminID, adminID)
		c.Locals(LocalAdminEmail, email)
		return c.Next()
	}
}

// GetAdminID devuelve el AdminID del contexto (después del middleware de auth).
func GetAdminID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAdminID).(string)
	return s
}

// GetAdminEmail devuelve el email del administrador autenticado.
func GetAdminEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAdminEmail).(string)
	return s
}
