package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type PartOrderFilter struct {
	Status entity.PartOrderStatus
	PartID string
}

type PartOrderRepository interface {
	Create(ctx context.Context, p *entity.PartOrder) error
	GetByID(ctx context.Context, id string) (*entity.PartOrder, error)
	Update(ctx context.Context, p *entity.PartOrder) error
	// ListOpenByPart pedidos ORDERED o IN_DELIVERY del repuesto, el más antiguo primero.
	ListOpenByPart(ctx context.Context, partID string) ([]*entity.PartOrder, error)
	ListByRepairOrder(ctx context.Context, repairOrderID string) ([]*entity.PartOrder, error)
	List(ctx context.Context, f PartOrderFilter) ([]*entity.PartOrder, error)
}
