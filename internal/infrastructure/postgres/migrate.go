package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations aplica las migraciones pendientes desde migrationsDir.
// Se ejecuta al arranque; una DB ya al día no es error.
func RunMigrations(dsn, migrationsDir string) error {
	m, err := migrate.New("file://"+migrationsDir, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("abrir migraciones: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}

// pgx5URL ajusta el esquema del DSN al que registra el driver pgx/v5 de
// golang-migrate.
func pgx5URL(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "postgresql://"); ok {
		return "pgx5://" + rest
	}
	if rest, ok := strings.CutPrefix(dsn, "postgres://"); ok {
		return "pgx5://" + rest
	}
	return dsn
}
