package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	appanalytics "github.com/jhoicas/azenterprise-api/internal/application/analytics"
	"github.com/jhoicas/azenterprise-api/internal/application/auth"
	"github.com/jhoicas/azenterprise-api/internal/application/billing"
	appbooking "github.com/jhoicas/azenterprise-api/internal/application/booking"
	"github.com/jhoicas/azenterprise-api/internal/application/contact"
	"github.com/jhoicas/azenterprise-api/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	BookingUC   *appbooking.BookingUseCase
	CustomerUC  *appbooking.CustomerUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ContactUC   *contact.ContactUseCase
	JWTSecret   string

	AllowedOrigins string // lista separada por comas; "*" o vacío = cualquiera
	LoginRateLimit int    // intentos por minuto y por IP; 0 = sin límite
	UploadDir      string // si no está vacío se sirve en /uploads (almacenamiento local)
	ServiceName    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir, fiber.Static{Browse: false})
	}

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName, "time": time.Now().UTC()})
	})

	// Admin (login público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	admin := api.Group("/admin")
	admin.Post("/create", authHandler.CreateAdmin)
	admin.Post("/login", loginLimiter(deps.LoginRateLimit), authHandler.Login)
	admin.Post("/verify-otp", loginLimiter(deps.LoginRateLimit), authHandler.VerifyOTP)
	admin.Get("/verify", AuthMiddleware(deps.JWTSecret), authHandler.Verify)

	// Rutas públicas del sitio
	bookingHandler := NewBookingHandler(deps.BookingUC)
	api.Post("/bookings", bookingHandler.Create)
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", contactHandler.Submit)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Bookings (protegido)
	bookings := protected.Group("/bookings")
	bookings.Get("/", bookingHandler.List)
	bookings.Get("/:id", bookingHandler.GetByID)
	bookings.Put("/:id/status", bookingHandler.UpdateStatus)
	bookings.Delete("/:id", bookingHandler.Delete)
	bookings.Get("/:id/documents/:docType", bookingHandler.Document)
	bookings.Get("/:id/slip", bookingHandler.Slip)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:email", customerHandler.GetByEmail)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Contact (protegido)
	protected.Get("/contact", contactHandler.List)

	// Invoices (protegido). Las rutas fijas van antes de /:id.
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Get("/next/number", invoiceHandler.NextNumber)
	invoices.Post("/generate-pdf", invoiceHandler.PreviewPDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/publish", invoiceHandler.Publish)
	invoices.Get("/:id/xml", invoiceHandler.ExportXML)
}

func corsConfig(origins string) cors.Config {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, If-None-Match",
		ExposeHeaders: "Content-Disposition, ETag",
	}
}

func loginLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "Too many attempts. Try again in a minute.",
			})
		},
	})
}
