package inventory

import (
	"context"

	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// Reconciliation efectos de conciliar los pedidos abiertos de un repuesto. TouchedOrders son las órdenes
// vinculadas a pedidos recién entregados; todavía no están bloqueadas ni promovidas.
type Reconciliation struct {
	DeliveredPartOrders []string
	TouchedOrders       []string
}

// ReceiptReconciler concilia pedidos pendientes después de acreditar stock, dentro de la misma
// transacción y con el bloqueo del repuesto tomado. Lo implementa procurement.
// El llamador promueve las órdenes tocadas en orden ascendente de id, después de conciliar todos los repuestos.
type ReceiptReconciler interface {
	ReconcileInTx(ctx context.Context, r repository.Repos, partID string) (Reconciliation, error)
	PromoteIfReadyInTx(ctx context.Context, r repository.Repos, orderID string) (lifecycle.Change, bool, error)
}
