package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type WorkLogRepository interface {
	Create(ctx context.Context, w *entity.WorkLog) error
	Update(ctx context.Context, w *entity.WorkLog) error
	// GetOpen tramo sin EndTime del técnico en la orden.
	GetOpen(ctx context.Context, orderID, technicianID string) (*entity.WorkLog, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.WorkLog, error)
}
