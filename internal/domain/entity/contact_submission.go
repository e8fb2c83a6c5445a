package entity

import "time"

// ContactSubmission mensaje enviado desde el formulario de contacto.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}
