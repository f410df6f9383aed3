package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/Reparaciones-api/pkg/config"
)

// Migrate aplica (up) o revierte un paso (down) de las migraciones en cfg.MigrationsPath.
// Sin cambios pendientes no es error.
func Migrate(cfg config.DBConfig, direction string) error {
	m, err := migrate.New(cfg.MigrationsPath, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("abrir migraciones: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		return fmt.Errorf("dirección de migración desconocida %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
