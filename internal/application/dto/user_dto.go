package dto

import "time"

// CreateAdminRequest body para POST /api/admin/create (solo mientras no
// exista ningún administrador).
type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	SetupKey string `json:"setupKey"`
}

// LoginRequest paso 1 del login: email + password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse el OTP se envió al email del administrador.
type LoginResponse struct {
	Message   string `json:"message"`
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"` // segundos
}

// VerifyOTPRequest paso 2 del login.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// AdminResponse administrador sin hashes.
type AdminResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TokenResponse JWT emitido tras verificar el OTP.
type TokenResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int           `json:"expires_in"` // segundos
	Admin     AdminResponse `json:"admin"`
}

// VerifyResponse respuesta de GET /api/admin/verify.
type VerifyResponse struct {
	Valid bool          `json:"valid"`
	Admin AdminResponse `json:"admin"`
}
