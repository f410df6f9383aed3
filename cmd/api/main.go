package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Reparaciones-api/internal/app"
	"github.com/jhoicas/Reparaciones-api/internal/application/auth"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/memory"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Reparaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Reparaciones-api/internal/interfaces/http"
	"github.com/jhoicas/Reparaciones-api/pkg/config"
	"github.com/jhoicas/Reparaciones-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title           Reparaciones API
// @version         1.0
// @description     Órdenes de reparación, presupuestos, bodega, pedidos a proveedor y cobro.

// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Escriba "Bearer" seguido de un espacio y el JWT.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	infra := app.Infra{
		Renderer: infrapdf.NewMarotoDocumentGenerator(),
		Sheets:   xlsx.NewOrdersWriter(),
		PINs:     notify.NewLogPINSender(log.Component("pin"), cfg.App.Env == "development"),
	}

	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		infra.Tx = memory.NewTxRunner(store)
		infra.Repos = store.Repos()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		infra.Tx = postgres.NewTxRunner(pool)
		infra.Repos = postgres.NewRepos(pool)
	}

	prom := metrics.New()
	infra.Metrics = prom
	infra.MetricsHandler = prom.Handler()

	var notifier ports.Notifier = notify.NewLogNotifier(log.Component("events"))
	if cfg.Kafka.Enabled() {
		kn, err := kafka.NewNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("productor Kafka")
		}
		defer func() { _ = kn.Close() }()
		notifier = kn
	}
	infra.Notifier = notifier

	container := app.New(infra, app.Settings{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		DocumentPrefix: cfg.Settlement.DocumentPrefix,
		ShopName:       cfg.Settlement.ShopName,
	}, log.Zerolog())

	// En memoria no hay cmd/migrate: el gerente inicial se crea al arrancar.
	if cfg.Storage.Driver == "memory" && cfg.Bootstrap.ManagerEmail != "" {
		res, created, err := container.Employees.Bootstrap(ctx, dto.CreateEmployeeRequest{
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

	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	fiberApp.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Reparaciones API",
		}))
	}

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(fiberApp, container.RouterDeps())

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
