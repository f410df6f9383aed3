package order

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// Execution resultado de arrancar la ejecución dentro de una transacción.
type Execution struct {
	Changes    []lifecycle.Change
	Backorders []*entity.PartOrder
}

// StartExecutionInTx lleva la orden (ya bloqueada, igual que los repuestos del presupuesto) a IN_PROGRESS.
// Si el stock no cubre lo presupuestado crea un pedido por cada faltante, por la cantidad necesaria,
// y deja la orden en WAITING_FOR_PARTS.
func (uc *LifecycleUseCase) StartExecutionInTx(ctx context.Context, r repository.Repos, o *entity.RepairOrder, est *entity.CostEstimate, now time.Time) (Execution, error) {
	var ex Execution
	ch, err := lifecycle.Apply(o, entity.StatusInProgress, now)
	if err != nil {
		return ex, err
	}
	ex.Changes = append(ex.Changes, ch)

	lines, err := inventory.ShortageInTx(ctx, r, est)
	if err != nil {
		return ex, err
	}
	if inventory.HasShortage(lines) {
		for _, l := range lines {
			if l.Missing == 0 {
				continue
			}
			po, err := uc.backorders.CreateForOrderInTx(ctx, r, l.PartID, l.Needed, o.ID)
			if err != nil {
				return ex, err
			}
			ex.Backorders = append(ex.Backorders, po)
		}
		ch, err := lifecycle.Apply(o, entity.StatusWaitingForParts, now)
		if err != nil {
			return ex, err
		}
		ex.Changes = append(ex.Changes, ch)
	}
	return ex, r.Orders.Update(ctx, o)
}

// ResumeRepair WAITING_FOR_TECHNICIAN -> IN_PROGRESS cuando ya llegaron los repuestos. Solo con presupuesto
// aprobado. Si entretanto el stock se consumió, vuelve a WAITING_FOR_PARTS con pedidos nuevos.
func (uc *LifecycleUseCase) ResumeRepair(ctx context.Context, actor domain.Actor, orderID string) (*dto.ExecutionResult, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	est, err := inventory.ApprovedEstimate(ctx, uc.repos, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTransition, err)
	}

	var (
		out *entity.RepairOrder
		ex  Execution
	)
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if _, err := inventory.LockPartsInTx(ctx, r, partIDs(est)); err != nil {
			return err
		}
		o, err := lockOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if err := requireAssigned(actor, o); err != nil {
			return err
		}
		if o.Status != entity.StatusWaitingForTechnician {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, entity.StatusInProgress)
		}
		// el presupuesto pudo cambiar entre la lectura sin bloqueo y ahora
		current, err := inventory.ApprovedEstimate(ctx, r, orderID)
		if err != nil {
			return err
		}
		ex, err = uc.StartExecutionInTx(ctx, r, o, current, uc.now())
		out = o
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Publish(ctx, actor.ID, ex.Changes)
	return &dto.ExecutionResult{Order: dto.FromRepairOrder(out), Backorders: dto.FromPartOrders(ex.Backorders)}, nil
}

// RequestBackorder IN_PROGRESS -> WAITING_FOR_PARTS pedido explícito del técnico. Sin ítems se pide
// el faltante actual del presupuesto aprobado.
func (uc *LifecycleUseCase) RequestBackorder(ctx context.Context, actor domain.Actor, orderID string, items []dto.ConsumePartRequest) (*dto.ExecutionResult, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.PartID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ítem con repuesto vacío o cantidad no positiva", domain.ErrValidation)
		}
		ids = append(ids, it.PartID)
	}
	if len(items) == 0 {
		est, err := inventory.ApprovedEstimate(ctx, uc.repos, orderID)
		if err != nil {
			return nil, err
		}
		ids = partIDs(est)
	}

	var (
		out     *entity.RepairOrder
		created []*entity.PartOrder
		ch      lifecycle.Change
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		created = nil
		if _, err := inventory.LockPartsInTx(ctx, r, ids); err != nil {
			return err
		}
		o, err := lockOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if err := requireAssigned(actor, o); err != nil {
			return err
		}
		if o.Status != entity.StatusInProgress {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, entity.StatusWaitingForParts)
		}
		req := items
		if len(req) == 0 {
			est, err := inventory.ApprovedEstimate(ctx, r, orderID)
			if err != nil {
				return err
			}
			lines, err := inventory.ShortageInTx(ctx, r, est)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if l.Missing > 0 {
					req = append(req, dto.ConsumePartRequest{PartID: l.PartID, Quantity: l.Needed})
				}
			}
			if len(req) == 0 {
				return fmt.Errorf("%w: no hay faltantes que pedir", domain.ErrValidation)
			}
		}
		for _, it := range req {
			po, err := uc.backorders.CreateForOrderInTx(ctx, r, it.PartID, it.Quantity, o.ID)
			if err != nil {
				return err
			}
			created = append(created, po)
		}
		if ch, err = lifecycle.Apply(o, entity.StatusWaitingForParts, uc.now()); err != nil {
			return err
		}
		out = o
		return r.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Publish(ctx, actor.ID, []lifecycle.Change{ch})
	return &dto.ExecutionResult{Order: dto.FromRepairOrder(out), Backorders: dto.FromPartOrders(created)}, nil
}

// ConsumePart el técnico retira de bodega un repuesto del presupuesto aprobado mientras repara.
// No puede retirar más de lo que queda presupuestado para esa línea.
func (uc *LifecycleUseCase) ConsumePart(ctx context.Context, actor domain.Actor, orderID string, in dto.ConsumePartRequest) (*dto.CostEstimateResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	if in.PartID == "" || in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: repuesto y cantidad positiva son obligatorios", domain.ErrValidation)
	}
	var out *entity.CostEstimate
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if _, err := inventory.LockPartsInTx(ctx, r, []string{in.PartID}); err != nil {
			return err
		}
		o, err := lockOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if err := requireAssigned(actor, o); err != nil {
			return err
		}
		if o.Status != entity.StatusInProgress {
			return fmt.Errorf("%w: solo se retiran repuestos con la orden en %s", domain.ErrInvalidTransition, entity.StatusInProgress)
		}
		est, err := inventory.ApprovedEstimate(ctx, r, orderID)
		if err != nil {
			return err
		}
		idx := -1
		for i, l := range est.Parts {
			if l.PartID == in.PartID && l.Remaining() > 0 {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: el repuesto %s no está pendiente en el presupuesto", domain.ErrValidation, in.PartID)
		}
		if in.Quantity > est.Parts[idx].Remaining() {
			return fmt.Errorf("%w: quedan %d presupuestados", domain.ErrValidation, est.Parts[idx].Remaining())
		}
		if _, err := uc.stock.WithdrawInTx(ctx, r, in.PartID, in.Quantity); err != nil {
			return err
		}
		est.Parts[idx].Consumed += in.Quantity
		out = est
		return r.Estimates.Update(ctx, est)
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Metrics().ObserveWithdrawal(in.Quantity)
	uc.log.Info().Str("order_id", orderID).Str("part_id", in.PartID).Int("quantity", in.Quantity).Msg("repuesto retirado para la orden")
	res := dto.FromCostEstimate(out)
	return &res, nil
}

func partIDs(est *entity.CostEstimate) []string {
	ids := make([]string, 0, len(est.Parts))
	for _, l := range est.Parts {
		ids = append(ids, l.PartID)
	}
	return ids
}
