// Package procurement enlaza pedidos de repuestos con las órdenes que esperan y las promueve cuando
// todo su material está disponible.
package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

var _ inventory.ReceiptReconciler = (*ReconcilerUseCase)(nil)

// ReconcilerUseCase pedidos al proveedor y conciliación contra recepciones.
// Tocar un pedido exige tener bloqueado su repuesto.
type ReconcilerUseCase struct {
	tx    ports.TxRunner
	repos repository.Repos
	pub   *ports.Publisher
	log   zerolog.Logger
	now   func() time.Time
}

func NewReconcilerUseCase(tx ports.TxRunner, repos repository.Repos, pub *ports.Publisher, log zerolog.Logger) *ReconcilerUseCase {
	return &ReconcilerUseCase{tx: tx, repos: repos, pub: pub, log: log, now: time.Now}
}

// ReconcileInTx recorre los pedidos abiertos del repuesto, el más antiguo primero. Cada uno cuya cantidad
// cabe en el stock actual pasa a DELIVERED (no se vuelve a descontar). Devuelve las órdenes vinculadas sin
// bloquearlas: la promoción la hace el llamador cuando ya tiene todos los repuestos de la entrega.
// Que el stock no alcance no es un error. Requiere el bloqueo del repuesto tomado por el llamador.
func (uc *ReconcilerUseCase) ReconcileInTx(ctx context.Context, r repository.Repos, partID string) (inventory.Reconciliation, error) {
	var rec inventory.Reconciliation

	part, err := r.Parts.GetForUpdate(ctx, partID)
	if err != nil {
		return rec, err
	}
	if part == nil {
		return rec, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, partID)
	}
	open, err := r.PartOrders.ListOpenByPart(ctx, partID)
	if err != nil {
		return rec, err
	}

	now := uc.now()
	seen := make(map[string]bool)
	for _, po := range open {
		if po.Quantity > part.Quantity {
			continue
		}
		po.Status = entity.PartOrderDelivered
		po.UpdatedAt = now
		if err := r.PartOrders.Update(ctx, po); err != nil {
			return rec, err
		}
		rec.DeliveredPartOrders = append(rec.DeliveredPartOrders, po.ID)
		if po.RepairOrderID != "" && !seen[po.RepairOrderID] {
			seen[po.RepairOrderID] = true
			rec.TouchedOrders = append(rec.TouchedOrders, po.RepairOrderID)
		}
	}
	return rec, nil
}

// PromoteIfReadyInTx WAITING_FOR_PARTS -> WAITING_FOR_TECHNICIAN si todos los pedidos de la orden
// están DELIVERED o CANCELLED. Bloquea la orden; los repuestos ya deben estar bloqueados.
func (uc *ReconcilerUseCase) PromoteIfReadyInTx(ctx context.Context, r repository.Repos, orderID string) (lifecycle.Change, bool, error) {
	order, err := r.Orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return lifecycle.Change{}, false, err
	}
	if order == nil || order.Status != entity.StatusWaitingForParts {
		return lifecycle.Change{}, false, nil
	}
	pos, err := r.PartOrders.ListByRepairOrder(ctx, orderID)
	if err != nil {
		return lifecycle.Change{}, false, err
	}
	for _, po := range pos {
		if !po.IsSettled() {
			return lifecycle.Change{}, false, nil
		}
	}
	ch, err := lifecycle.Apply(order, entity.StatusWaitingForTechnician, uc.now())
	if err != nil {
		return lifecycle.Change{}, false, err
	}
	if err := r.Orders.Update(ctx, order); err != nil {
		return lifecycle.Change{}, false, err
	}
	uc.log.Info().Str("order_id", orderID).Msg("orden lista para el técnico: repuestos completos")
	return ch, true, nil
}

// CreateForOrderInTx crea un pedido vinculado a la orden. El repuesto debe estar bloqueado.
func (uc *ReconcilerUseCase) CreateForOrderInTx(ctx context.Context, r repository.Repos, partID string, qty int, orderID string) (*entity.PartOrder, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrValidation)
	}
	now := uc.now()
	po := &entity.PartOrder{
		ID:            uuid.New().String(),
		PartID:        partID,
		Quantity:      qty,
		Status:        entity.PartOrderOrdered,
		RepairOrderID: orderID,
		OrderDate:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.PartOrders.Create(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// CreatePartOrder pedido manual de bodega o del técnico; la orden vinculada es opcional.
func (uc *ReconcilerUseCase) CreatePartOrder(ctx context.Context, actor domain.Actor, in dto.CreatePartOrderRequest) (*dto.PartOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleWarehouse, entity.RoleTechnician, entity.RoleManager); err != nil {
		return nil, err
	}
	if in.PartID == "" || in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: repuesto y cantidad positiva son obligatorios", domain.ErrValidation)
	}
	var out *entity.PartOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		part, err := r.Parts.GetForUpdate(ctx, in.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, in.PartID)
		}
		if in.RepairOrderID != "" {
			o, err := r.Orders.GetByID(ctx, in.RepairOrderID)
			if err != nil {
				return err
			}
			if o == nil {
				return fmt.Errorf("%w: orden %s", domain.ErrNotFound, in.RepairOrderID)
			}
			if lifecycle.IsTerminal(o.Status) {
				return fmt.Errorf("%w: la orden %s está cerrada", domain.ErrInvalidTransition, o.ID)
			}
		}
		po, err := uc.CreateForOrderInTx(ctx, r, in.PartID, in.Quantity, in.RepairOrderID)
		if err != nil {
			return err
		}
		po.EstimatedDelivery = in.EstimatedDelivery
		out = po
		return r.PartOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	res := dto.FromPartOrder(out)
	return &res, nil
}

// MarkInDelivery ORDERED -> IN_DELIVERY, opcionalmente con nueva fecha estimada.
func (uc *ReconcilerUseCase) MarkInDelivery(ctx context.Context, actor domain.Actor, id string, in dto.MarkInDeliveryRequest) (*dto.PartOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleWarehouse, entity.RoleManager); err != nil {
		return nil, err
	}
	var out *entity.PartOrder
	err := uc.withLockedPartOrder(ctx, id, func(r repository.Repos, po *entity.PartOrder) error {
		if po.Status != entity.PartOrderOrdered {
			return fmt.Errorf("%w: pedido %s en %s", domain.ErrInvalidTransition, po.ID, po.Status)
		}
		po.Status = entity.PartOrderInDelivery
		if in.EstimatedDelivery != nil {
			po.EstimatedDelivery = in.EstimatedDelivery
		}
		po.UpdatedAt = uc.now()
		out = po
		return r.PartOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	res := dto.FromPartOrder(out)
	return &res, nil
}

// CancelPartOrder cancela un pedido abierto y vuelve a revisar si la orden vinculada puede avanzar.
func (uc *ReconcilerUseCase) CancelPartOrder(ctx context.Context, actor domain.Actor, id string) (*dto.PartOrderChange, error) {
	if err := domain.RequireRole(actor, entity.RoleWarehouse, entity.RoleManager); err != nil {
		return nil, err
	}
	var (
		out      *entity.PartOrder
		change   lifecycle.Change
		promoted bool
	)
	err := uc.withLockedPartOrder(ctx, id, func(r repository.Repos, po *entity.PartOrder) error {
		if !po.IsOpen() {
			return fmt.Errorf("%w: pedido %s en %s", domain.ErrInvalidTransition, po.ID, po.Status)
		}
		po.Status = entity.PartOrderCancelled
		po.UpdatedAt = uc.now()
		if err := r.PartOrders.Update(ctx, po); err != nil {
			return err
		}
		out = po
		if po.RepairOrderID == "" {
			return nil
		}
		var err error
		change, promoted, err = uc.PromoteIfReadyInTx(ctx, r, po.RepairOrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := &dto.PartOrderChange{PartOrder: dto.FromPartOrder(out)}
	if promoted {
		res.PromotedOrder = change.OrderID
		uc.pub.Metrics().ObservePromotion()
		uc.pub.Publish(ctx, actor.ID, []lifecycle.Change{change})
	}
	return res, nil
}

// withLockedPartOrder lee el pedido sin bloqueo para conocer su repuesto, bloquea el repuesto y relee.
func (uc *ReconcilerUseCase) withLockedPartOrder(ctx context.Context, id string, fn func(r repository.Repos, po *entity.PartOrder) error) error {
	first, err := uc.repos.PartOrders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if first == nil {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		if _, err := r.Parts.GetForUpdate(ctx, first.PartID); err != nil {
			return err
		}
		po, err := r.PartOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		return fn(r, po)
	})
}

func (uc *ReconcilerUseCase) GetPartOrder(ctx context.Context, id string) (*dto.PartOrderResponse, error) {
	po, err := uc.repos.PartOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	res := dto.FromPartOrder(po)
	return &res, nil
}

// ListPartOrders filtra por estado (ORDERED, IN_DELIVERY, ...) si se indica.
func (uc *ReconcilerUseCase) ListPartOrders(ctx context.Context, status string) ([]dto.PartOrderResponse, error) {
	f := repository.PartOrderFilter{Status: entity.PartOrderStatus(status)}
	switch f.Status {
	case "", entity.PartOrderOrdered, entity.PartOrderInDelivery, entity.PartOrderDelivered, entity.PartOrderCancelled:
	default:
		return nil, fmt.Errorf("%w: estado de pedido %q", domain.ErrValidation, status)
	}
	list, err := uc.repos.PartOrders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromPartOrders(list), nil
}

func (uc *ReconcilerUseCase) ListByRepairOrder(ctx context.Context, orderID string) ([]dto.PartOrderResponse, error) {
	list, err := uc.repos.PartOrders.ListByRepairOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return dto.FromPartOrders(list), nil
}
