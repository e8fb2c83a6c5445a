// Package notification envía los avisos (email y SMS) de reservas, contacto
// y login de administradores sin bloquear la petición HTTP que los origina.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

// Asuntos de los correos.
const (
	SubjectOTP           = "Your OTP for Admin Login - A Z ENTERPRISES"
	SubjectBookingClient = "Booking Confirmation - A Z ENTERPRISES"
	SubjectStatusPrefix  = "Booking Status Updated: "
	SubjectBookingAdmin  = "New Booking Received - A Z ENTERPRISES"
	SubjectContactAdmin  = "New Contact Message - A Z ENTERPRISES"
)

// DefaultTimeout tiempo máximo de cada envío.
const DefaultTimeout = 20 * time.Second

// Config destinatarios y textos fijos.
type Config struct {
	CompanyName string
	AdminInbox  string // vacío = sin avisos al administrador
	OTPMinutes  int
	Timeout     time.Duration
}

// Dispatcher lanza cada envío en su propia goroutine con timeout. Los
// errores se registran y nunca llegan al caller.
type Dispatcher struct {
	email ports.EmailSender
	sms   ports.MessageSender
	cfg   Config
	log   *logger.Logger
	wg    sync.WaitGroup
}

// NewDispatcher construye el dispatcher. sms puede ser nil.
func NewDispatcher(email ports.EmailSender, sms ports.MessageSender, cfg Config, log *logger.Logger) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.OTPMinutes <= 0 {
		cfg.OTPMinutes = 10
	}
	return &Dispatcher{email: email, sms: sms, cfg: cfg, log: log.Component("notification")}
}

// Wait bloquea hasta que terminan los envíos en curso (apagado y tests).
func (d *Dispatcher) Wait() { d.wg.Wait() }

// ── Eventos ───────────────────────────────────────────────────────────────────

// SendOTP envía el código de login al administrador.
func (d *Dispatcher) SendOTP(email, otp string) {
	html, err := render("otp", map[string]any{"OTP": otp, "Minutes": d.cfg.OTPMinutes})
	d.sendEmail("otp", email, SubjectOTP, html, err)
}

// BookingReceived confirma la reserva al cliente (email + SMS) y avisa al administrador.
func (d *Dispatcher) BookingReceived(b *entity.Booking) {
	data := map[string]any{
		"Reference": b.Reference, "Name": b.Name, "Phone": b.Phone, "Email": b.Email,
		"Address": b.Address, "Requirement": b.Requirement, "PreferredDate": b.PreferredDate,
		"Company": d.cfg.CompanyName,
	}
	html, err := render("booking-confirmation", data)
	d.sendEmail("booking-confirmation", b.Email, SubjectBookingClient, html, err)
	d.sendSMS("booking-confirmation", b.Phone, fmt.Sprintf(
		"Dear %s, your booking %s with %s has been received. We will contact you shortly.",
		b.Name, b.Reference, d.cfg.CompanyName))

	if d.cfg.AdminInbox != "" {
		html, err := render("booking-admin", data)
		d.sendEmail("booking-admin", d.cfg.AdminInbox, SubjectBookingAdmin, html, err)
	}
}

// BookingStatusChanged avisa al cliente del nuevo estado.
func (d *Dispatcher) BookingStatusChanged(b *entity.Booking) {
	html, err := render("status-update", map[string]any{"Name": b.Name, "Status": b.Status, "Company": d.cfg.CompanyName})
	d.sendEmail("status-update", b.Email, SubjectStatusPrefix+b.Status, html, err)
	d.sendSMS("status-update", b.Phone, fmt.Sprintf(
		"Dear %s, your booking %s is now %s. - %s", b.Name, b.Reference, b.Status, d.cfg.CompanyName))
}

// ContactReceived reenvía el mensaje del formulario al administrador.
func (d *Dispatcher) ContactReceived(c *entity.ContactSubmission) {
	if d.cfg.AdminInbox == "" {
		return
	}
	html, err := render("contact-admin", c)
	d.sendEmail("contact-admin", d.cfg.AdminInbox, SubjectContactAdmin, html, err)
}

// ── Envío asíncrono ───────────────────────────────────────────────────────────

func (d *Dispatcher) sendEmail(kind, to, subject, html string, renderErr error) {
	if renderErr != nil {
		d.log.Error().Err(renderErr).Str("kind", kind).Msg("no se pudo armar el email")
		return
	}
	if to == "" || d.email == nil {
		return
	}
	d.async(kind, "email", func(ctx context.Context) error {
		return d.email.SendEmail(ctx, ports.EmailMessage{To: to, Subject: subject, HTML: html})
	})
}

func (d *Dispatcher) sendSMS(kind, to, body string) {
	if to == "" || d.sms == nil {
		return
	}
	d.async(kind, "sms", func(ctx context.Context) error {
		return d.sms.SendMessage(ctx, to, body)
	})
}

func (d *Dispatcher) async(kind, channel string, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error().Interface("panic", r).Str("kind", kind).Str("channel", channel).Msg("panic en envío")
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			d.log.Error().Err(err).Str("kind", kind).Str("channel", channel).Msg("envío fallido")
			return
		}
		d.log.Debug().Str("kind", kind).Str("channel", channel).Dur("took", time.Since(start)).Msg("envío completado")
	}()
}
