package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// SparePartFilter filtros del listado de repuestos.
type SparePartFilter struct {
	Category string
	LowOnly  bool // Quantity < MinQuantity
}

// SparePartRepository define el puerto del libro de inventario.
// Usado dentro de transacciones para garantizar consistencia.
type SparePartRepository interface {
	Create(ctx context.Context, p *entity.SparePart) error
	GetByID(ctx context.Context, id string) (*entity.SparePart, error)
	// GetForUpdate bloquea el repuesto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error)
	Update(ctx context.Context, p *entity.SparePart) error
	List(ctx context.Context, f SparePartFilter) ([]*entity.SparePart, error)
}
