package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env en el directorio

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 24*60, cfg.JWT.Expiration)
	assert.Equal(t, 10, cfg.Admin.OTPTTLMinutes)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Storage.MaxUploadMB)
	assert.Equal(t, "log", cfg.Email.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("OTP_TTL_MINUTES", "5")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "az-docs")
	t.Setenv("COMPANY_NAME", "A Z ENTERPRISES")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.Admin.OTPTTLMinutes)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "az-docs", cfg.Storage.Bucket)
	assert.Equal(t, "A Z ENTERPRISES", cfg.Company.Name)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EMAIL_DRIVER", "pigeon")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BrevoSinAPIKey(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EMAIL_DRIVER", "brevo")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_S3SinBucket(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "s3")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "az", Password: "p@ss:w/rd", DBName: "az", SSLMode: "disable"}
	assert.Equal(t, "postgres://az:p%40ss%3Aw%2Frd@db:5432/az?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
