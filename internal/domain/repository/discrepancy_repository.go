package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type DiscrepancyRepository interface {
	Create(ctx context.Context, d *entity.StockDiscrepancy) error
	List(ctx context.Context, partID string) ([]*entity.StockDiscrepancy, error)
}
