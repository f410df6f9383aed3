package order

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// StockWithdrawer descuenta stock dentro de la transacción del llamador (inventory.LedgerUseCase).
type StockWithdrawer interface {
	WithdrawInTx(ctx context.Context, r repository.Repos, partID string, qty int) (*entity.SparePart, error)
}

// Backorderer crea pedidos vinculados a una orden (procurement.ReconcilerUseCase).
type Backorderer interface {
	CreateForOrderInTx(ctx context.Context, r repository.Repos, partID string, qty int, orderID string) (*entity.PartOrder, error)
}
