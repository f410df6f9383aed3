package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// StartWork abre un tramo de trabajo del técnico asignado (diagnóstico o reparación).
func (uc *LifecycleUseCase) StartWork(ctx context.Context, actor domain.Actor, orderID string) (*dto.WorkLogResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	var out *entity.WorkLog
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := lockOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if err := requireAssigned(actor, o); err != nil {
			return err
		}
		if o.Status != entity.StatusDiagnosing && o.Status != entity.StatusInProgress {
			return fmt.Errorf("%w: no se registra trabajo en %s", domain.ErrInvalidTransition, o.Status)
		}
		open, err := r.WorkLogs.GetOpen(ctx, orderID, actor.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return fmt.Errorf("%w: ya hay un tramo abierto", domain.ErrDuplicate)
		}
		out = &entity.WorkLog{
			ID:           uuid.New().String(),
			OrderID:      orderID,
			TechnicianID: actor.ID,
			StartTime:    uc.now(),
		}
		return r.WorkLogs.Create(ctx, out)
	})
	if err != nil {
		return nil, err
	}
	res := dto.FromWorkLog(out)
	return &res, nil
}

// StopWork cierra el tramo abierto y suma sus minutos al total de la orden.
func (uc *LifecycleUseCase) StopWork(ctx context.Context, actor domain.Actor, orderID string) (*dto.WorkLogResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	var out *entity.WorkLog
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := lockOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		w, err := r.WorkLogs.GetOpen(ctx, orderID, actor.ID)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: no hay tramo abierto", domain.ErrNotFound)
		}
		end := uc.now()
		w.EndTime = &end
		w.DurationMinutes = int(end.Sub(w.StartTime).Minutes())
		if err := r.WorkLogs.Update(ctx, w); err != nil {
			return err
		}
		o.TotalWorkTimeMinutes += w.DurationMinutes
		o.UpdatedAt = end
		out = w
		return r.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	res := dto.FromWorkLog(out)
	return &res, nil
}

func (uc *LifecycleUseCase) ListWorkLogs(ctx context.Context, actor domain.Actor, orderID string) ([]dto.WorkLogResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician, entity.RoleManager); err != nil {
		return nil, err
	}
	list, err := uc.repos.WorkLogs.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkLogResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.FromWorkLog(w))
	}
	return out, nil
}
