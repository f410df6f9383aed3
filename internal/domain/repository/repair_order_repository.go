package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// OrderFilter filtros opcionales del listado de órdenes; campos vacíos no filtran.
type OrderFilter struct {
	Status       entity.OrderStatus
	ClientID     string
	TechnicianID string
	Limit        int
	Offset       int
}

type RepairOrderRepository interface {
	Create(ctx context.Context, o *entity.RepairOrder) error
	GetByID(ctx context.Context, id string) (*entity.RepairOrder, error)
	// GetForUpdate bloquea la orden hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.RepairOrder, error)
	Update(ctx context.Context, o *entity.RepairOrder) error
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, f OrderFilter) ([]*entity.RepairOrder, error)
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error)
	// NextNumber consecutivo de orden; no se devuelve en rollback.
	NextNumber(ctx context.Context) (int64, error)
}
