package directory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/app/apptest"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type sentPIN struct{ phone, pin string }

type pinRecorder struct{ sent []sentPIN }

func (p *pinRecorder) SendPIN(_ context.Context, phone, pin string) error {
	p.sent = append(p.sent, sentPIN{phone, pin})
	return nil
}

func TestEmployee_CreateAndList(t *testing.T) {
	f := apptest.New(t)

	e, err := f.Employees.Create(f.Ctx, f.Manager, dto.CreateEmployeeRequest{
		FirstName: "Luis", LastName: "Gómez", Email: " Luis@Taller.TEST ", Password: "clave-segura", Role: "technician", SkillLevel: "senior",
	})
	require.NoError(t, err)
	assert.Equal(t, "luis@taller.test", e.Email)
	assert.Equal(t, string(entity.RoleTechnician), e.Role)
	assert.Equal(t, string(entity.SkillSenior), e.SkillLevel)

	techs, err := f.Employees.List(f.Ctx, f.Manager, "TECHNICIAN")
	require.NoError(t, err)
	assert.Len(t, techs, 2) // el del fixture y el nuevo

	_, err = f.Employees.Create(f.Ctx, f.Manager, dto.CreateEmployeeRequest{
		FirstName: "Otro", Email: "luis@taller.test", Password: "clave-segura", Role: "OFFICE",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEmployee_CreateRejections(t *testing.T) {
	f := apptest.New(t)
	base := dto.CreateEmployeeRequest{FirstName: "Ana", Email: "ana@taller.test", Password: "clave-segura", Role: "OFFICE"}

	_, err := f.Employees.Create(f.Ctx, f.Office, base)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	for name, mut := range map[string]func(*dto.CreateEmployeeRequest){
		"email":  func(r *dto.CreateEmployeeRequest) { r.Email = "no-es-email" },
		"rol":    func(r *dto.CreateEmployeeRequest) { r.Role = "CLIENT" },
		"nivel":  func(r *dto.CreateEmployeeRequest) { r.SkillLevel = "EXPERT" },
		"clave":  func(r *dto.CreateEmployeeRequest) { r.Password = "corta" },
		"nombre": func(r *dto.CreateEmployeeRequest) { r.FirstName = " " },
	} {
		in := base
		mut(&in)
		_, err := f.Employees.Create(f.Ctx, f.Manager, in)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
}

func TestEmployee_BootstrapIsIdempotent(t *testing.T) {
	f := apptest.New(t)
	in := dto.CreateEmployeeRequest{FirstName: "Jefe", Email: "jefe@taller.test", Password: "clave-segura", Role: "OFFICE"}

	e, created, err := f.Employees.Bootstrap(f.Ctx, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, string(entity.RoleManager), e.Role)

	again, created, err := f.Employees.Bootstrap(f.Ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, e.ID, again.ID)
}

func TestClient_CreateSendsPIN(t *testing.T) {
	pins := &pinRecorder{}
	f := apptest.New(t, apptest.WithPINs(pins))

	c, err := f.Clients.Create(f.Ctx, f.Office, dto.CreateClientRequest{FirstName: "Marta", LastName: "Ruiz", Phone: "+57 300-123-4567"})
	require.NoError(t, err)
	assert.Equal(t, "+573001234567", c.Phone)
	require.Len(t, pins.sent, 1)
	assert.Equal(t, c.Phone, pins.sent[0].phone)
	assert.Regexp(t, `^\d{6}$`, pins.sent[0].pin)

	login, err := f.Auth.LoginClient(f.Ctx, dto.ClientLoginRequest{Phone: c.Phone, PIN: pins.sent[0].pin})
	require.NoError(t, err)
	assert.Equal(t, c.ID, login.ActorID)
	assert.Equal(t, string(entity.RoleClient), login.Role)

	_, err = f.Clients.Create(f.Ctx, f.Office, dto.CreateClientRequest{FirstName: "Otra", Phone: "+573001234567"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClient_ResetPINInvalidatesOld(t *testing.T) {
	pins := &pinRecorder{}
	f := apptest.New(t, apptest.WithPINs(pins))
	c, err := f.Clients.Create(f.Ctx, f.Office, dto.CreateClientRequest{FirstName: "Marta", Phone: "3001112233"})
	require.NoError(t, err)
	old := pins.sent[0].pin

	require.NoError(t, f.Clients.ResetPIN(f.Ctx, f.Manager, c.ID))
	require.Len(t, pins.sent, 2)
	fresh := pins.sent[1].pin

	if old != fresh {
		_, err = f.Auth.LoginClient(f.Ctx, dto.ClientLoginRequest{Phone: c.Phone, PIN: old})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	_, err = f.Auth.LoginClient(f.Ctx, dto.ClientLoginRequest{Phone: c.Phone, PIN: fresh})
	assert.NoError(t, err)
}

func TestClient_Visibility(t *testing.T) {
	f := apptest.New(t)
	a := f.Client()

	_, err := f.Clients.Get(f.Ctx, a, a.ID)
	assert.NoError(t, err)
	_, err = f.Clients.Get(f.Ctx, a, f.Client().ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.Clients.Get(f.Ctx, f.Tech, a.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestServiceAction_CRUD(t *testing.T) {
	f := apptest.New(t)

	_, err := f.Actions.Create(f.Ctx, f.Office, dto.ServiceActionRequest{Name: "Limpieza", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.Actions.Create(f.Ctx, f.Manager, dto.ServiceActionRequest{Name: "Limpieza", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	a, err := f.Actions.Create(f.Ctx, f.Manager, dto.ServiceActionRequest{Name: "Limpieza", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	up, err := f.Actions.Update(f.Ctx, f.Manager, a.ID, dto.ServiceActionRequest{Price: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.Equal(t, "Limpieza", up.Name)
	assert.True(t, up.Price.Equal(decimal.RequireFromString("12.5")))

	list, err := f.Actions.List(f.Ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
