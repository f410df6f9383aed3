package repository

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// InvoiceRepository documento de venta. Create falla con domain.ErrDuplicate si la orden ya tiene uno.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error)
	NextSequence(ctx context.Context) (int64, error)
}
