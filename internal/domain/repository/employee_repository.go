package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia del personal.
// Los Get devuelven (nil, nil) cuando no existe la fila.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	// List filtra por rol si role != "".
	List(ctx context.Context, role entity.Role) ([]*entity.Employee, error)
}
