// seed_admin crea el primer administrador directamente en la base de datos,
// sin pasar por POST /api/admin/create ni necesitar la setup key.
//
// Uso: go run ./cmd/seed_admin <email>
// La contraseña se lee de ADMIN_PASSWORD. Aplica las migraciones pendientes
// antes de crear el usuario. Falla si ya existe un administrador.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/azenterprise-api/internal/application/auth"
	"github.com/jhoicas/azenterprise-api/internal/domain"
	"github.com/jhoicas/azenterprise-api/internal/infrastructure/postgres"
	"github.com/jhoicas/azenterprise-api/pkg/config"
	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

// noOTP el seed nunca hace login.
type noOTP struct{}

func (noOTP) SendOTP(string, string) {}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_admin <email>  (contraseña en ADMIN_PASSWORD)")
		os.Exit(2)
	}
	email := os.Args[1]
	password := os.Getenv("ADMIN_PASSWORD")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := postgres.NewMigrator(pool, postgres.NewTxRunner(pool), log).Up(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	uc := auth.NewAuthUseCase(postgres.NewAdminUserRepository(pool), noOTP{}, auth.Config{}, log)
	admin, err := uc.SeedAdmin(ctx, email, password)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			fmt.Fprintf(os.Stderr, "Datos inválidos: %s\n", verr.Message)
		case errors.Is(err, auth.ErrAdminExists):
			fmt.Fprintln(os.Stderr, "Ya existe un administrador; no se crea otro.")
		default:
			fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: %s (%s)\n", admin.Email, admin.ID)
}
