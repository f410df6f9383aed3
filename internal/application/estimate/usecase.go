// Package estimate arma presupuestos con precios copiados del catálogo y registra la decisión del cliente.
package estimate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/application/order"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	calc "github.com/jhoicas/Reparaciones-api/internal/domain/estimate"
	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// Executor arranca la ejecución de una orden aprobada (order.LifecycleUseCase).
type Executor interface {
	StartExecutionInTx(ctx context.Context, r repository.Repos, o *entity.RepairOrder, est *entity.CostEstimate, now time.Time) (order.Execution, error)
}

type EstimateUseCase struct {
	tx       ports.TxRunner
	repos    repository.Repos
	executor Executor
	pub      *ports.Publisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewEstimateUseCase(tx ports.TxRunner, repos repository.Repos, executor Executor, pub *ports.Publisher, log zerolog.Logger) *EstimateUseCase {
	return &EstimateUseCase{tx: tx, repos: repos, executor: executor, pub: pub, log: log, now: time.Now}
}

// Create el técnico asignado cierra el diagnóstico con un presupuesto. Precios copiados por valor
// en este momento; la orden pasa a WAITING_FOR_ACCEPTANCE en la misma transacción.
func (uc *EstimateUseCase) Create(ctx context.Context, actor domain.Actor, orderID string, in dto.CreateEstimateRequest) (*dto.CostEstimateResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	if len(in.Parts) == 0 && len(in.ActionIDs) == 0 {
		return nil, fmt.Errorf("%w: el presupuesto necesita repuestos o acciones", domain.ErrValidation)
	}
	qty := make(map[string]int, len(in.Parts))
	var ids []string
	for _, p := range in.Parts {
		if p.PartID == "" || p.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea de repuesto inválida", domain.ErrValidation)
		}
		if _, ok := qty[p.PartID]; !ok {
			ids = append(ids, p.PartID)
		}
		qty[p.PartID] += p.Quantity
	}

	var (
		out *entity.CostEstimate
		ch  lifecycle.Change
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
		}
		if o.TechnicianID != actor.ID {
			return fmt.Errorf("%w: la orden no está asignada a este técnico", domain.ErrForbidden)
		}
		if o.Status == entity.StatusWaitingForAcceptance {
			list, err := r.Estimates.ListByOrder(ctx, o.ID)
			if err != nil {
				return err
			}
			for _, e := range list {
				if e.IsPending() {
					return fmt.Errorf("%w: la orden %s ya tiene un presupuesto pendiente", domain.ErrEstimateConflict, o.ID)
				}
			}
		}
		if o.Status != entity.StatusDiagnosing {
			return fmt.Errorf("%w: presupuesto solo en %s, la orden está en %s", domain.ErrInvalidTransition, entity.StatusDiagnosing, o.Status)
		}

		est := &entity.CostEstimate{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			CreatedBy: actor.ID,
			CreatedAt: uc.now(),
		}
		for _, id := range ids {
			p, err := r.Parts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, id)
			}
			est.Parts = append(est.Parts, entity.EstimatePartLine{
				PartID:    p.ID,
				PartName:  p.Name,
				Quantity:  qty[id],
				UnitPrice: p.Price,
			})
		}
		for _, id := range in.ActionIDs {
			a, err := r.Actions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if a == nil {
				return fmt.Errorf("%w: acción %s", domain.ErrNotFound, id)
			}
			est.Actions = append(est.Actions, entity.EstimateActionLine{ActionID: a.ID, Name: a.Name, Price: a.Price})
		}
		calc.Apply(est)

		if err := r.Estimates.Create(ctx, est); err != nil {
			return err
		}
		if ch, err = lifecycle.Apply(o, entity.StatusWaitingForAcceptance, uc.now()); err != nil {
			return err
		}
		out = est
		return r.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Publish(ctx, actor.ID, []lifecycle.Change{ch})
	uc.log.Info().Str("order_id", orderID).Str("estimate_id", out.ID).Str("total", out.TotalCost.StringFixed(2)).Msg("presupuesto creado")
	res := dto.FromCostEstimate(out)
	return &res, nil
}

// Decide aprobación o rechazo, una sola vez. Lo hace el cliente dueño o recepción en su nombre.
// Aprobado: IN_PROGRESS, o WAITING_FOR_PARTS con pedidos si falta stock. Rechazado: CANCELLED.
func (uc *EstimateUseCase) Decide(ctx context.Context, actor domain.Actor, orderID string, approved bool) (*dto.DecisionResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleClient, entity.RoleOffice); err != nil {
		return nil, err
	}
	first, err := uc.latest(ctx, uc.repos, orderID)
	if err != nil {
		return nil, err
	}
	var partIDs []string
	for _, l := range first.Parts {
		partIDs = append(partIDs, l.PartID)
	}

	var (
		est *entity.CostEstimate
		o   *entity.RepairOrder
		ex  order.Execution
	)
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		ex = order.Execution{}
		if approved {
			if _, err := inventory.LockPartsInTx(ctx, r, partIDs); err != nil {
				return err
			}
		}
		if o, err = r.Orders.GetForUpdate(ctx, orderID); err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
		}
		if err := order.CanView(actor, o); err != nil {
			return err
		}
		if est, err = uc.latest(ctx, r, orderID); err != nil {
			return err
		}
		if est.ID != first.ID || !est.IsPending() {
			return fmt.Errorf("%w: el presupuesto ya fue decidido", domain.ErrInvalidTransition)
		}
		if o.Status != entity.StatusWaitingForAcceptance {
			return fmt.Errorf("%w: la orden está en %s", domain.ErrInvalidTransition, o.Status)
		}

		now := uc.now()
		est.Approved = &approved
		est.DecidedAt = &now
		if err := r.Estimates.Update(ctx, est); err != nil {
			return err
		}
		if !approved {
			ch, err := lifecycle.Apply(o, entity.StatusCancelled, now)
			if err != nil {
				return err
			}
			ex.Changes = append(ex.Changes, ch)
			return r.Orders.Update(ctx, o)
		}
		ex, err = uc.executor.StartExecutionInTx(ctx, r, o, est, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Publish(ctx, actor.ID, ex.Changes)
	uc.log.Info().Str("order_id", orderID).Bool("approved", approved).Int("backorders", len(ex.Backorders)).Msg("presupuesto decidido")
	return &dto.DecisionResponse{
		Estimate:   dto.FromCostEstimate(est),
		Order:      dto.FromRepairOrder(o),
		Backorders: dto.FromPartOrders(ex.Backorders),
	}, nil
}

// GetActive presupuesto vigente: el pendiente o, si no hay, el último decidido.
func (uc *EstimateUseCase) GetActive(ctx context.Context, actor domain.Actor, orderID string) (*dto.CostEstimateResponse, error) {
	if err := uc.canView(ctx, actor, orderID); err != nil {
		return nil, err
	}
	est, err := uc.latest(ctx, uc.repos, orderID)
	if err != nil {
		return nil, err
	}
	res := dto.FromCostEstimate(est)
	return &res, nil
}

func (uc *EstimateUseCase) ListByOrder(ctx context.Context, actor domain.Actor, orderID string) ([]dto.CostEstimateResponse, error) {
	if err := uc.canView(ctx, actor, orderID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Estimates.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CostEstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.FromCostEstimate(e))
	}
	return out, nil
}

func (uc *EstimateUseCase) canView(ctx context.Context, actor domain.Actor, orderID string) error {
	o, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
	}
	return order.CanView(actor, o)
}

func (uc *EstimateUseCase) latest(ctx context.Context, r repository.Repos, orderID string) (*entity.CostEstimate, error) {
	list, err := r.Estimates.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: la orden %s no tiene presupuesto", domain.ErrNotFound, orderID)
	}
	for _, e := range list {
		if e.IsPending() {
			return e, nil
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list[len(list)-1], nil
}
