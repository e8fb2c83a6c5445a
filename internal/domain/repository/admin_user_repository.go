package repository

import (
	"context"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
)

// AdminUserRepository define el puerto de persistencia para administradores.
type AdminUserRepository interface {
	Count(ctx context.Context) (int, error)
	// Create devuelve domain.ErrDuplicate si el email ya existe.
	Create(ctx context.Context, user *entity.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	GetByID(ctx context.Context, id string) (*entity.AdminUser, error)
	// SetOTP guarda el hash del OTP y su vencimiento.
	SetOTP(ctx context.Context, id, otpHash string, expiry time.Time) error
	// ClearOTP borra el OTP pendiente y registra el login.
	ClearOTP(ctx context.Context, id string, lastLogin time.Time) error
}
