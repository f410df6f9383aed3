// Package apptest arma un Container sobre el almacenamiento en memoria con personal y catálogo
// sembrados, para las pruebas de los casos de uso.
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/app"
	"github.com/jhoicas/Reparaciones-api/internal/application/auth"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Reparaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/xlsx"
)

type Fixture struct {
	T     *testing.T
	Ctx   context.Context
	Store *memory.Store
	Repos repository.Repos
	*app.Container

	Manager, Office, Tech, Warehouse domain.Actor
}

// Option ajusta la infraestructura antes de construir el Container.
type Option func(*app.Infra)

func WithNotifier(n ports.Notifier) Option { return func(in *app.Infra) { in.Notifier = n } }
func WithMetrics(m ports.Metrics) Option   { return func(in *app.Infra) { in.Metrics = m } }
func WithPINs(p ports.PINSender) Option    { return func(in *app.Infra) { in.PINs = p } }

func New(t *testing.T, opts ...Option) *Fixture {
	t.Helper()
	store := memory.NewStore()
	in := app.Infra{
		Tx:       memory.NewTxRunner(store),
		Repos:    store.Repos(),
		Metrics:  ports.NopMetrics{},
		Renderer: infrapdf.NewMarotoDocumentGenerator(),
		Sheets:   xlsx.NewOrdersWriter(),
	}
	for _, o := range opts {
		o(&in)
	}
	c := app.New(in, app.Settings{
		JWT:            auth.JWTConfig{Secret: "apptest-secret", ExpMinutes: 60, Issuer: "apptest"},
		DocumentPrefix: "FV",
		ShopName:       "Taller",
	}, zerolog.Nop())

	f := &Fixture{T: t, Ctx: context.Background(), Store: store, Repos: store.Repos(), Container: c}
	f.Manager = f.Employee(entity.RoleManager)
	f.Office = f.Employee(entity.RoleOffice)
	f.Tech = f.Employee(entity.RoleTechnician)
	f.Warehouse = f.Employee(entity.RoleWarehouse)
	return f
}

// Employee siembra un empleado directamente en el repositorio.
func (f *Fixture) Employee(role entity.Role) domain.Actor {
	f.T.Helper()
	id := uuid.New().String()
	require.NoError(f.T, f.Repos.Employees.Create(f.Ctx, &entity.Employee{
		ID: id, FirstName: string(role), LastName: "Prueba", Email: id + "@taller.test",
		Role: role, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	return domain.Actor{ID: id, Role: role}
}

func (f *Fixture) Client() domain.Actor {
	f.T.Helper()
	id := uuid.New().String()
	require.NoError(f.T, f.Repos.Clients.Create(f.Ctx, &entity.Client{
		ID: id, FirstName: "Cliente", LastName: "Prueba", Phone: id[:10], CreatedAt: time.Now(),
	}))
	return domain.Actor{ID: id, Role: entity.RoleClient}
}

func (f *Fixture) Part(name string, qty int, price string) string {
	f.T.Helper()
	p, err := f.Ledger.AddPart(f.Ctx, f.Warehouse, dto.CreateSparePartRequest{
		Name: name, Quantity: qty, MinQuantity: 1, Price: decimal.RequireFromString(price),
	})
	require.NoError(f.T, err)
	return p.ID
}

func (f *Fixture) Action(name, price string) string {
	f.T.Helper()
	a, err := f.Actions.Create(f.Ctx, f.Manager, dto.ServiceActionRequest{Name: name, Price: decimal.RequireFromString(price)})
	require.NoError(f.T, err)
	return a.ID
}

func (f *Fixture) Stock(partID string) int {
	f.T.Helper()
	p, err := f.Repos.Parts.GetByID(f.Ctx, partID)
	require.NoError(f.T, err)
	require.NotNil(f.T, p)
	return p.Quantity
}

func (f *Fixture) Status(orderID string) entity.OrderStatus {
	f.T.Helper()
	o, err := f.Repos.Orders.GetByID(f.Ctx, orderID)
	require.NoError(f.T, err)
	require.NotNil(f.T, o)
	return o.Status
}

// Diagnosing crea una orden para client, la asigna a Tech y la deja en DIAGNOSING.
func (f *Fixture) Diagnosing(client domain.Actor) string {
	f.T.Helper()
	o, err := f.Orders.Create(f.Ctx, f.Office, dto.CreateOrderRequest{
		ClientID: client.ID, DeviceDescription: "Celular", ProblemDescription: "No carga",
	})
	require.NoError(f.T, err)
	_, err = f.Orders.AssignTechnician(f.Ctx, f.Manager, o.ID, f.Tech.ID)
	require.NoError(f.T, err)
	_, err = f.Orders.StartDiagnosis(f.Ctx, f.Tech, o.ID)
	require.NoError(f.T, err)
	return o.ID
}

// Approved lleva la orden a la decisión aprobada del presupuesto indicado.
func (f *Fixture) Approved(client domain.Actor, parts []dto.EstimatePartInput, actionIDs ...string) (string, *dto.DecisionResponse) {
	f.T.Helper()
	orderID := f.Diagnosing(client)
	_, err := f.Estimates.Create(f.Ctx, f.Tech, orderID, dto.CreateEstimateRequest{Parts: parts, ActionIDs: actionIDs})
	require.NoError(f.T, err)
	res, err := f.Estimates.Decide(f.Ctx, client, orderID, true)
	require.NoError(f.T, err)
	return orderID, res
}
