// migrate aplica el esquema y crea el gerente inicial.
//
// Uso: go run ./cmd/migrate [up|down]
// Con BOOTSTRAP_MANAGER_EMAIL y BOOTSTRAP_MANAGER_PASSWORD definidos, después de "up" crea ese gerente si no existe.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/Reparaciones-api/internal/application/directory"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reparaciones-api/pkg/config"
	"github.com/jhoicas/Reparaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}
	if err := postgres.Migrate(cfg.DB, direction); err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migraciones")
	}
	log.Info().Str("direction", direction).Str("path", cfg.DB.MigrationsPath).Msg("migraciones aplicadas")

	if direction != "up" || cfg.Bootstrap.ManagerEmail == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	employees := directory.NewEmployeeUseCase(postgres.NewRepos(pool).Employees)
	res, created, err := employees.Bootstrap(ctx, dto.CreateEmployeeRequest{
		FirstName: "Gerente",
		LastName:  "Inicial",
		Email:     cfg.Bootstrap.ManagerEmail,
		Password:  cfg.Bootstrap.ManagerPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear gerente inicial")
	}
	log.Info().Str("employee_id", res.ID).Bool("created", created).Msg("gerente inicial")
}
