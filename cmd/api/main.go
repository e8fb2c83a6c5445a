package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/azenterprise-api/internal/application/analytics"
	"github.com/jhoicas/azenterprise-api/internal/application/auth"
	"github.com/jhoicas/azenterprise-api/internal/application/billing"
	appbooking "github.com/jhoicas/azenterprise-api/internal/application/booking"
	"github.com/jhoicas/azenterprise-api/internal/application/contact"
	"github.com/jhoicas/azenterprise-api/internal/application/notification"
	"github.com/jhoicas/azenterprise-api/internal/application/ports"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/azenterprise-api/internal/infrastructure/pdf"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/postgres"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/storage"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/tally"
	httpRouter "github.com/jhoicas/azenterprise-api/internal/interfaces/http"
	"github.com/jhoicas/azenterprise-api/pkg/config"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	if cfg.DB.AutoMigrate {
		applied, err := postgres.NewMigrator(pool, txRunner, log).Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Int("applied", applied).Msg("migraciones al día")
	}

	adminRepo := postgres.NewAdminUserRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	company := companyProfile(cfg.Company)
	docStorage, uploadDir := newStorage(cfg.Storage, log)

	dispatcher := notification.NewDispatcher(newEmailSender(cfg, log), newMessageSender(cfg.SMS, log), notification.Config{
		CompanyName: company.Name,
		AdminInbox:  cfg.Admin.NotifyEmail,
		OTPMinutes:  cfg.Admin.OTPTTLMinutes,
	}, log.Component("notification"))

	authUC := auth.NewAuthUseCase(adminRepo, dispatcher, auth.Config{
		SetupKey: cfg.Admin.SetupKey,
		OTPTTL:   time.Duration(cfg.Admin.OTPTTLMinutes) * time.Minute,
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	}, log)

	// PDF de factura: gofpdf con fuentes TTF opcionales (₹ requiere una fuente Unicode).
	pdfWriter, err := infrapdf.NewGofpdfWriter(cfg.PDF.FontPath, cfg.PDF.BoldFontPath, company.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("fuentes del PDF")
	}
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo)
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceRepo, invoiceUC, infrapdf.NewInvoicePDFGenerator(pdfWriter),
		tally.NewVoucherBuilder(), docStorage, company, log.Component("billing"),
	)

	bookingUC := appbooking.NewBookingUseCase(
		bookingRepo, docStorage, infrapdf.NewMarotoSlipGenerator(), dispatcher,
		company, int64(cfg.Storage.MaxUploadMB)<<20, log,
	)
	customerUC := appbooking.NewCustomerUseCase(customerRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(bookingRepo, invoiceRepo, analyticsRepo)
	contactUC := contact.NewContactUseCase(contactRepo, dispatcher)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "A Z Enterprises API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		InvoiceUC:      invoiceUC,
		InvoicePDF:     invoicePDFUC,
		BookingUC:      bookingUC,
		CustomerUC:     customerUC,
		DashboardUC:    dashboardUC,
		ContactUC:      contactUC,
		JWTSecret:      cfg.JWT.Secret,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		UploadDir:      uploadDir,
		ServiceName:    cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Los avisos en vuelo terminan antes de cerrar el pool.
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}

// companyProfile aplica sobre el perfil por defecto los campos definidos en configuración.
func companyProfile(c config.CompanyConfig) entity.CompanyProfile {
	p := entity.DefaultCompanyProfile()
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&p.Name, c.Name)
	set(&p.Tagline, c.Tagline)
	set(&p.GSTIN, c.GSTIN)
	set(&p.Address, c.Address)
	set(&p.Contact, c.Contact)
	set(&p.Bank.AccountName, c.AccountName)
	set(&p.Bank.AccountNumber, c.AccountNumber)
	set(&p.Bank.IFSC, c.IFSC)
	set(&p.Signatory, c.Signatory)
	if strings.TrimSpace(c.Terms) != "" {
		var terms []string
		for _, t := range strings.Split(c.Terms, "|") {
			if t = strings.TrimSpace(t); t != "" {
				terms = append(terms, t)
			}
		}
		p.Terms = terms
	}
	return p
}

// newStorage devuelve el almacenamiento de documentos y, si es local, el
// directorio que hay que servir en /uploads.
func newStorage(c config.StorageConfig, log *logger.Logger) (ports.DocumentStorage, string) {
	switch c.Driver {
	case "s3":
		s, err := storage.NewS3Storage(storage.S3Options{
			Bucket:        c.Bucket,
			Region:        c.Region,
			Endpoint:      c.Endpoint,
			PublicBaseURL: c.PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		log.Info().Str("bucket", c.Bucket).Msg("documentos en S3")
		return s, ""
	default:
		s, err := storage.NewLocalStorage(c.LocalDir, c.LocalBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento local")
		}
		log.Info().Str("dir", c.LocalDir).Msg("documentos en disco local")
		return s, c.LocalDir
	}
}

func newEmailSender(cfg *config.Config, log *logger.Logger) ports.EmailSender {
	e := cfg.Email
	switch e.Driver {
	case "brevo":
		return notify.NewBrevoSender(e.BrevoAPIKey, e.FromName, e.FromAddress)
	case "smtp":
		return notify.NewSMTPSender(e.SMTPHost, e.SMTPPort, e.SMTPUser, e.SMTPPassword, e.FromName, e.FromAddress)
	default:
		if cfg.App.IsProduction() {
			log.Warn().Msg("EMAIL_DRIVER=log en producción: los OTP solo quedan en el log")
		}
		return notify.NewLogSender(log.Component("email"))
	}
}

func newMessageSender(c config.SMSConfig, log *logger.Logger) ports.MessageSender {
	if c.GatewayURL == "" {
		return notify.NewLogSender(log.Component("sms"))
	}
	return notify.NewSMSGateway(c.GatewayURL, c.Token, c.Sender)
}
