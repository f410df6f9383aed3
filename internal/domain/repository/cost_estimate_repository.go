package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// CostEstimateRepository guarda presupuestos con sus líneas.
// Create falla con domain.ErrEstimateConflict si la orden ya tiene uno pendiente.
type CostEstimateRepository interface {
	Create(ctx context.Context, e *entity.CostEstimate) error
	GetByID(ctx context.Context, id string) (*entity.CostEstimate, error)
	Update(ctx context.Context, e *entity.CostEstimate) error
	// ListByOrder en orden de creación.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.CostEstimate, error)
}
