package notify

import (
	"context"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

var (
	_ ports.EmailSender   = (*LogSender)(nil)
	_ ports.MessageSender = (*LogSender)(nil)
)

// LogSender escribe los mensajes en el log en lugar de enviarlos.
// Se usa en desarrollo y cuando no hay proveedor configurado.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el adaptador.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// SendEmail registra destinatario y asunto (el cuerpo puede llevar un OTP).
func (s *LogSender) SendEmail(_ context.Context, msg ports.EmailMessage) error {
	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("html_bytes", len(msg.HTML)).Msg("email (sin proveedor)")
	return nil
}

// SendMessage registra destinatario y longitud del mensaje.
func (s *LogSender) SendMessage(_ context.Context, to, body string) error {
	s.log.Info().Str("to", NormalizePhone(to)).Int("chars", len(body)).Msg("mensaje (sin pasarela)")
	return nil
}
