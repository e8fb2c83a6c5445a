package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
)

var _ ports.EmailSender = (*SMTPSender)(nil)

// SMTPSender adaptador de EmailSender sobre SMTP (gomail).
type SMTPSender struct {
	dialer   *gomail.Dialer
	fromName string
	from     string
}

// NewSMTPSender construye el adaptador. Con puerto 465 gomail usa TLS
// implícito; con 587 negocia STARTTLS.
func NewSMTPSender(host string, port int, user, password, fromName, from string) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(host, port, user, password),
		fromName: fromName,
		from:     from,
	}
}

// BuildMessage arma el mensaje MIME sin enviarlo.
func (s *SMTPSender) BuildMessage(msg ports.EmailMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	return m
}

// SendEmail abre una conexión por mensaje; el volumen es bajo (OTP y avisos).
// gomail no acepta contexto: solo se comprueba antes de marcar.
func (s *SMTPSender) SendEmail(ctx context.Context, msg ports.EmailMessage) error {
	if msg.To == "" {
		return fmt.Errorf("smtp: destinatario vacío")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	if err := s.dialer.DialAndSend(s.BuildMessage(msg)); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", msg.To, err)
	}
	return nil
}
