package billing

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// SaleDocument datos que necesita la representación gráfica del documento de venta.
type SaleDocument struct {
	ShopName   string
	Invoice    *entity.Invoice
	Order      *entity.RepairOrder
	Client     *entity.Client
	Estimate   *entity.CostEstimate
	Technician *entity.Employee // puede ser nil
}

// DocumentRenderer genera el PDF del documento de venta.
type DocumentRenderer interface {
	RenderSaleDocument(ctx context.Context, doc SaleDocument) ([]byte, error)
}
