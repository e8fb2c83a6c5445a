package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/azenterprise-api/internal/application/dto"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/repository"
	"github.com/jhoicas/azenterprise-api/pkg/jwt"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

// Mensajes de validación.
const (
	MsgSetupKeyRequired   = "Setup key is required"
	MsgCredentialsMissing = "Email and password are required"
	MsgOTPMissing         = "Email and OTP are required"
	MsgPasswordTooShort   = "Password must be at least 8 characters"
	MsgOTPSent            = "OTP sent to your email"
)

const minPasswordLen = 8

// Errores de autenticación. Envuelven los errores de dominio para que el
// handler elija el código HTTP con errors.Is.
var (
	ErrInvalidSetupKey    = fmt.Errorf("setup key inválida: %w", domain.ErrForbidden)
	ErrAdminExists        = fmt.Errorf("ya existe un administrador: %w", domain.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("credenciales inválidas: %w", domain.ErrUnauthorized)
	ErrInvalidOTP         = fmt.Errorf("OTP inválido: %w", domain.ErrUnauthorized)
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del login de administradores.
type Config struct {
	SetupKey string // vacío = POST /api/admin/create deshabilitado
	OTPTTL   time.Duration
	JWT      JWTConfig
}

// OTPSender entrega el código al administrador (email en segundo plano).
type OTPSender interface {
	SendOTP(email, otp string)
}

// AuthUseCase alta del primer administrador y login en dos pasos
// (password → OTP por email → JWT).
type AuthUseCase struct {
	repo   repository.AdminUserRepository
	otp    OTPSender
	cfg    Config
	log    *logger.Logger
	now    func() time.Time
	newOTP func() (string, error)
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repo repository.AdminUserRepository, otp OTPSender, cfg Config, log *logger.Logger) *AuthUseCase {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 10 * time.Minute
	}
	return &AuthUseCase{repo: repo, otp: otp, cfg: cfg, log: log.Component("auth"), now: time.Now, newOTP: generateOTP}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// CreateAdmin crea el administrador. Solo funciona con la setup key
// correcta y mientras no exista ninguno.
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, in dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	if in.SetupKey == "" {
		return nil, domain.NewValidationError(MsgSetupKeyRequired)
	}
	if uc.cfg.SetupKey == "" || subtle.ConstantTimeCompare([]byte(in.SetupKey), []byte(uc.cfg.SetupKey)) != 1 {
		return nil, ErrInvalidSetupKey
	}
	return uc.createAdmin(ctx, in.Email, in.Password)
}

// SeedAdmin crea el administrador desde la línea de comandos (sin setup key).
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, email, password string) (*dto.AdminResponse, error) {
	return uc.createAdmin(ctx, email, password)
}

func (uc *AuthUseCase) createAdmin(ctx context.Context, email, password string) (*dto.AdminResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError(MsgCredentialsMissing)
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewValidationError(MsgPasswordTooShort)
	}
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar administradores: %w", err)
	}
	if n > 0 {
		return nil, ErrAdminExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &entity.AdminUser{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    uc.now(),
	}
	if err := uc.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrAdminExists
		}
		return nil, fmt.Errorf("crear administrador: %w", err)
	}
	uc.log.Info().Str("admin_id", admin.ID).Str("email", admin.Email).Msg("administrador creado")
	return toAdminResponse(admin), nil
}

// Login verifica email/password, guarda el hash de un OTP nuevo y lo envía por email.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError(MsgCredentialsMissing)
	}
	admin, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar administrador: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	otp, err := uc.newOTP()
	if err != nil {
		return nil, fmt.Errorf("generar OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetOTP(ctx, admin.ID, string(hash), uc.now().Add(uc.cfg.OTPTTL)); err != nil {
		return nil, fmt.Errorf("guardar OTP: %w", err)
	}
	uc.otp.SendOTP(admin.Email, otp)

	return &dto.LoginResponse{
		Message:   MsgOTPSent,
		Email:     admin.Email,
		ExpiresIn: int(uc.cfg.OTPTTL.Seconds()),
	}, nil
}

// VerifyOTP valida el código pendiente; si es correcto lo consume y emite el JWT.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, in dto.VerifyOTPRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(in.Email)
	code := strings.TrimSpace(in.OTP)
	if email == "" || code == "" {
		return nil, domain.NewValidationError(MsgOTPMissing)
	}
	admin, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar administrador: %w", err)
	}
	if admin == nil || admin.OTPHash == "" {
		return nil, ErrInvalidOTP
	}
	now := uc.now()
	if !admin.OTPValid(now) {
		return nil, domain.ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.OTPHash), []byte(code)); err != nil {
		return nil, ErrInvalidOTP
	}

	if err := uc.repo.ClearOTP(ctx, admin.ID, now); err != nil {
		return nil, fmt.Errorf("consumir OTP: %w", err)
	}
	admin.LastLogin = &now

	token, err := jwt.Generate(uc.cfg.JWT.Secret, admin.ID, admin.Email, uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("admin_id", admin.ID).Msg("login de administrador")
	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: uc.cfg.JWT.ExpMinutes * 60,
		Admin:     *toAdminResponse(admin),
	}, nil
}

// Verify confirma que el administrador del token sigue existiendo.
func (uc *AuthUseCase) Verify(ctx context.Context, adminID string) (*dto.VerifyResponse, error) {
	admin, err := uc.repo.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("buscar administrador: %w", err)
	}
	if admin == nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.VerifyResponse{Valid: true, Admin: *toAdminResponse(admin)}, nil
}

// generateOTP código de 6 dígitos (100000–999999) con crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toAdminResponse(a *entity.AdminUser) *dto.AdminResponse {
	return &dto.AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
}
