// Package app arma los casos de uso sobre un almacenamiento ya elegido (memoria o PostgreSQL).
package app

import (
	nethttp "net/http"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/application/auth"
	"github.com/jhoicas/Reparaciones-api/internal/application/billing"
	"github.com/jhoicas/Reparaciones-api/internal/application/directory"
	"github.com/jhoicas/Reparaciones-api/internal/application/estimate"
	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/application/order"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/application/procurement"
	"github.com/jhoicas/Reparaciones-api/internal/application/report"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Reparaciones-api/internal/interfaces/http"
)

// Infra adaptadores de salida.
type Infra struct {
	Tx       ports.TxRunner
	Repos    repository.Repos
	Notifier ports.Notifier
	Metrics  ports.Metrics
	PINs     ports.PINSender
	Renderer billing.DocumentRenderer
	Sheets   report.SheetWriter
	// MetricsHandler se monta en /metrics si no es nil.
	MetricsHandler nethttp.Handler
}

type Settings struct {
	JWT            auth.JWTConfig
	DocumentPrefix string
	ShopName       string
}

// Container casos de uso listos para el router o para cmd/migrate.
type Container struct {
	Auth        *auth.AuthUseCase
	Orders      *order.LifecycleUseCase
	Estimates   *estimate.EstimateUseCase
	Ledger      *inventory.LedgerUseCase
	Procurement *procurement.ReconcilerUseCase
	Settlement  *billing.SettlementUseCase
	Documents   *billing.DocumentUseCase
	Employees   *directory.EmployeeUseCase
	Clients     *directory.ClientUseCase
	Actions     *directory.ServiceActionUseCase
	Reports     *report.ReportUseCase

	metricsHandler nethttp.Handler
	jwtSecret      string
}

func New(in Infra, s Settings, log zerolog.Logger) *Container {
	pub := ports.NewPublisher(in.Notifier, in.Metrics, log.With().Str("component", "events").Logger())

	reconciler := procurement.NewReconcilerUseCase(in.Tx, in.Repos, pub, log.With().Str("component", "procurement").Logger())
	ledger := inventory.NewLedgerUseCase(in.Tx, in.Repos, reconciler, pub, log.With().Str("component", "inventory").Logger())
	orders := order.NewLifecycleUseCase(in.Tx, in.Repos, ledger, reconciler, pub, log.With().Str("component", "orders").Logger())

	return &Container{
		Auth:        auth.NewAuthUseCase(in.Repos.Employees, in.Repos.Clients, s.JWT),
		Orders:      orders,
		Estimates:   estimate.NewEstimateUseCase(in.Tx, in.Repos, orders, pub, log.With().Str("component", "estimates").Logger()),
		Ledger:      ledger,
		Procurement: reconciler,
		Settlement:  billing.NewSettlementUseCase(in.Tx, in.Repos, pub, log.With().Str("component", "billing").Logger(), s.DocumentPrefix),
		Documents:   billing.NewDocumentUseCase(in.Repos, in.Renderer, s.ShopName),
		Employees:   directory.NewEmployeeUseCase(in.Repos.Employees),
		Clients:     directory.NewClientUseCase(in.Repos.Clients, in.PINs, log.With().Str("component", "clients").Logger()),
		Actions:     directory.NewServiceActionUseCase(in.Repos.Actions),
		Reports:     report.NewReportUseCase(in.Repos, in.Sheets),

		metricsHandler: in.MetricsHandler,
		jwtSecret:      s.JWT.Secret,
	}
}

// RouterDeps lo que necesita apphttp.Router.
func (c *Container) RouterDeps() apphttp.RouterDeps {
	return apphttp.RouterDeps{
		AuthUC:        c.Auth,
		OrderUC:       c.Orders,
		EstimateUC:    c.Estimates,
		LedgerUC:      c.Ledger,
		ProcurementUC: c.Procurement,
		SettlementUC:  c.Settlement,
		DocumentUC:    c.Documents,
		EmployeeUC:    c.Employees,
		ClientUC:      c.Clients,
		ActionUC:      c.Actions,
		ReportUC:      c.Reports,
		Metrics:       c.metricsHandler,
		JWTSecret:     c.jwtSecret,
	}
}
