package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

func TestRequireRole(t *testing.T) {
	office := Actor{ID: "e1", Role: entity.RoleOffice}

	assert.NoError(t, RequireRole(office, entity.RoleOffice, entity.RoleManager))
	assert.ErrorIs(t, RequireRole(office, entity.RoleTechnician), ErrForbidden)
	assert.ErrorIs(t, RequireRole(Actor{Role: entity.RoleOffice}, entity.RoleOffice), ErrUnauthorized)
}
