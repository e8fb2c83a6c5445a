package ports

import "context"

// EmailMessage correo HTML a un destinatario.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// EmailSender define el puerto de salida para correo transaccional
// (Brevo, SMTP o un adaptador que solo escribe en el log).
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// MessageSender define el puerto de salida para mensajes cortos (SMS o
// WhatsApp) a un número de teléfono.
type MessageSender interface {
	SendMessage(ctx context.Context, to, body string) error
}
