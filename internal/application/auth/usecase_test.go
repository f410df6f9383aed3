package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/app/apptest"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/pkg/jwt"
)

func TestLoginEmployee(t *testing.T) {
	f := apptest.New(t)
	e, err := f.Employees.Create(f.Ctx, f.Manager, dto.CreateEmployeeRequest{
		FirstName: "Bodega", Email: "bodega@taller.test", Password: "clave-segura", Role: "WAREHOUSE",
	})
	require.NoError(t, err)

	out, err := f.Auth.LoginEmployee(f.Ctx, dto.EmployeeLoginRequest{Email: "BODEGA@taller.test", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, e.ID, out.ActorID)
	assert.Equal(t, "WAREHOUSE", out.Role)
	assert.Equal(t, 3600, out.ExpiresIn)

	id, role, err := jwt.Parse("apptest-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, e.ID, id)
	assert.Equal(t, "WAREHOUSE", role)
}

func TestLoginEmployee_Failures(t *testing.T) {
	f := apptest.New(t)
	_, err := f.Employees.Create(f.Ctx, f.Manager, dto.CreateEmployeeRequest{
		FirstName: "Bodega", Email: "bodega@taller.test", Password: "clave-segura", Role: "WAREHOUSE",
	})
	require.NoError(t, err)

	_, err = f.Auth.LoginEmployee(f.Ctx, dto.EmployeeLoginRequest{Email: "bodega@taller.test", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.Auth.LoginEmployee(f.Ctx, dto.EmployeeLoginRequest{Email: "nadie@taller.test", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.Auth.LoginEmployee(f.Ctx, dto.EmployeeLoginRequest{Email: "bodega@taller.test"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoginClient_UnknownPhone(t *testing.T) {
	f := apptest.New(t)
	_, err := f.Auth.LoginClient(f.Ctx, dto.ClientLoginRequest{Phone: "3000000000", PIN: "123456"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
