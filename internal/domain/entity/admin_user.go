package entity

import "time"

// AdminUser usuario del panel de administración. El login es en dos pasos:
// password y luego un OTP de 6 dígitos enviado por email.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	OTPHash      string // bcrypt del OTP vigente; vacío si no hay login en curso
	OTPExpiry    *time.Time
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// OTPValid indica si hay un OTP pendiente que no ha vencido en now.
func (a *AdminUser) OTPValid(now time.Time) bool {
	return a.OTPHash != "" && a.OTPExpiry != nil && now.Before(*a.OTPExpiry)
}
