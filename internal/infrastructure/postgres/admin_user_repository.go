package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
)

var _ repository.AdminUserRepository = (*AdminUserRepo)(nil)

// AdminUserRepo implementación de AdminUserRepository.
type AdminUserRepo struct {
	q Querier
}

// NewAdminUserRepository construye el adaptador.
func NewAdminUserRepository(q Querier) *AdminUserRepo {
	return &AdminUserRepo{q: q}
}

const adminColumns = `id, email, password_hash, otp_hash, otp_expiry, last_login, created_at`

func scanAdmin(row pgx.Row) (*entity.AdminUser, error) {
	var a entity.AdminUser
	var otpHash *string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &otpHash, &a.OTPExpiry, &a.LastLogin, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.OTPHash = derefStr(otpHash)
	return &a, nil
}

// Count número de administradores.
func (r *AdminUserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return n, nil
}

// Create persiste el administrador.
func (r *AdminUserRepo) Create(ctx context.Context, a *entity.AdminUser) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO admin_users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s: %w", a.Email, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByEmail busca por email (sin distinguir mayúsculas).
func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	a, err := scanAdmin(r.q.QueryRow(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return a, nil
}

// GetByID busca por ID.
func (r *AdminUserRepo) GetByID(ctx context.Context, id string) (*entity.AdminUser, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	a, err := scanAdmin(r.q.QueryRow(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

// SetOTP guarda el hash del OTP y su vencimiento.
func (r *AdminUserRepo) SetOTP(ctx context.Context, id, otpHash string, expiry time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE admin_users SET otp_hash = $2, otp_expiry = $3 WHERE id = $1`, id, nullIfEmpty(otpHash), expiry)
	if err != nil {
		return fmt.Errorf("set otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearOTP borra el OTP pendiente y registra el login.
func (r *AdminUserRepo) ClearOTP(ctx context.Context, id string, lastLogin time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE admin_users SET otp_hash = NULL, otp_expiry = NULL, last_login = $2 WHERE id = $1`, id, lastLogin)
	if err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
