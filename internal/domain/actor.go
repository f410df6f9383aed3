package domain

import (
	"fmt"
	"slices"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// Actor identidad explícita de quien invoca una operación del núcleo.
type Actor struct {
	ID   string
	Role entity.Role
}

// RequireRole falla con ErrForbidden si el actor no tiene ninguno de los roles indicados.
func RequireRole(a Actor, roles ...entity.Role) error {
	if a.ID == "" {
		return ErrUnauthorized
	}
	if slices.Contains(roles, a.Role) {
		return nil
	}
	return fmt.Errorf("%w: rol %s", ErrForbidden, a.Role)
}
