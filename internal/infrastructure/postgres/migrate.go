package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/azenterprise-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration script SQL numerado (NNN_nombre.sql).
type Migration struct {
	Version string
	SQL     string
}

// Migrations devuelve los scripts embebidos ordenados por nombre.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	out := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := migrationsFS.ReadFile("migrations/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: strings.TrimSuffix(e.Name(), ".sql"), SQL: string(b)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrator aplica las migraciones pendientes, cada una en su propia transacción.
type Migrator struct {
	pool Querier
	tx   *TxRunner
	log  *logger.Logger
}

// NewMigrator construye el migrador.
func NewMigrator(pool Querier, tx *TxRunner, log *logger.Logger) *Migrator {
	return &Migrator{pool: pool, tx: tx, log: log.Component("migrations")}
}

// Up aplica en orden las migraciones que no figuran en schema_migrations.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	const ensure = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
		    version    TEXT PRIMARY KEY,
		    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := m.pool.Exec(ctx, ensure); err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}

	migrations, err := Migrations()
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, mig := range migrations {
		var one int
		err := m.pool.QueryRow(ctx, `SELECT 1 FROM schema_migrations WHERE version = $1`, mig.Version).Scan(&one)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return applied, fmt.Errorf("consultar migración %s: %w", mig.Version, err)
		}

		err = m.tx.Run(ctx, func(q Querier) error {
			if _, err := q.Exec(ctx, mig.SQL); err != nil {
				return err
			}
			_, err := q.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("aplicar migración %s: %w", mig.Version, err)
		}
		m.log.Info().Str("version", mig.Version).Msg("migración aplicada")
		applied++
	}
	return applied, nil
}
