// Package order implementa la máquina de estados de la orden de reparación.
package order

import (
	"context"
	"fmt"
	"strings"
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

// LifecycleUseCase mueve la orden por su grafo de estados. Toda operación recibe el actor explícito.
// Orden de bloqueo: repuestos (id ascendente) y luego la orden.
type LifecycleUseCase struct {
	tx         ports.TxRunner
	repos      repository.Repos
	stock      StockWithdrawer
	backorders Backorderer
	pub        *ports.Publisher
	log        zerolog.Logger
	now        func() time.Time
}

func NewLifecycleUseCase(
	tx ports.TxRunner,
	repos repository.Repos,
	stock StockWithdrawer,
	backorders Backorderer,
	pub *ports.Publisher,
	log zerolog.Logger,
) *LifecycleUseCase {
	return &LifecycleUseCase{tx: tx, repos: repos, stock: stock, backorders: backorders, pub: pub, log: log, now: time.Now}
}

// Create recepción de un equipo: la orden nace en NEW.
func (uc *LifecycleUseCase) Create(ctx context.Context, actor domain.Actor, in dto.CreateOrderRequest) (*dto.RepairOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleOffice, entity.RoleManager); err != nil {
		return nil, err
	}
	in.DeviceDescription = strings.TrimSpace(in.DeviceDescription)
	in.ProblemDescription = strings.TrimSpace(in.ProblemDescription)
	if in.ClientID == "" || in.DeviceDescription == "" || in.ProblemDescription == "" {
		return nil, fmt.Errorf("%w: cliente, equipo y falla son obligatorios", domain.ErrValidation)
	}
	client, err := uc.repos.Clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
	}
	seq, err := uc.repos.Orders.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	o := &entity.RepairOrder{
		ID:                 uuid.New().String(),
		Number:             fmt.Sprintf("RO-%06d", seq),
		ClientID:           client.ID,
		Status:             entity.StatusNew,
		DeviceDescription:  in.DeviceDescription,
		ProblemDescription: in.ProblemDescription,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repos.Orders.Create(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", o.ID).Str("number", o.Number).Str("actor_id", actor.ID).Msg("orden creada")
	out := dto.FromRepairOrder(o)
	return &out, nil
}

// AssignTechnician NEW -> WAITING_FOR_TECHNICIAN. El asignado debe tener rol TECHNICIAN.
func (uc *LifecycleUseCase) AssignTechnician(ctx context.Context, actor domain.Actor, orderID, technicianID string) (*dto.RepairOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleManager); err != nil {
		return nil, err
	}
	tech, err := uc.repos.Employees.GetByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, technicianID)
	}
	if tech.Role != entity.RoleTechnician {
		return nil, fmt.Errorf("%w: %s no es técnico", domain.ErrInvalidTransition, tech.ID)
	}
	return uc.transition(ctx, actor, orderID, entity.StatusWaitingForTechnician, func(_ repository.Repos, o *entity.RepairOrder) error {
		o.TechnicianID = tech.ID
		return nil
	})
}

// StartDiagnosis WAITING_FOR_TECHNICIAN -> DIAGNOSING (primer contacto del técnico asignado).
// Si la orden ya tiene presupuesto aprobado corresponde ResumeRepair.
func (uc *LifecycleUseCase) StartDiagnosis(ctx context.Context, actor domain.Actor, orderID string) (*dto.RepairOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	return uc.transition(ctx, actor, orderID, entity.StatusDiagnosing, func(r repository.Repos, o *entity.RepairOrder) error {
		if err := requireAssigned(actor, o); err != nil {
			return err
		}
		if _, err := inventory.ApprovedEstimate(ctx, r, o.ID); err == nil {
			return fmt.Errorf("%w: la orden ya tiene presupuesto aprobado", domain.ErrInvalidTransition)
		}
		return nil
	})
}

// MarkUnrepairable DIAGNOSING -> CANCELLED; el motivo queda en las notas de diagnóstico.
func (uc *LifecycleUseCase) MarkUnrepairable(ctx context.Context, actor domain.Actor, orderID, reason string) (*dto.RepairOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	return uc.transition(ctx, actor, orderID, entity.StatusCancelled, func(_ repository.Repos, o *entity.RepairOrder) error {
		if err := requireAssigned(actor, o); err != nil {
			return err
		}
		if o.Status != entity.StatusDiagnosing {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, entity.StatusCancelled)
		}
		if reason = strings.TrimSpace(reason); reason != "" {
			o.DiagnosisNotes = appendNote(o.DiagnosisNotes, "No reparable: "+reason)
		}
		return nil
	})
}

// FinishRepair IN_PROGRESS -> READY_FOR_PICKUP. Los repuestos presupuestados sin retirar no bloquean:
// se devuelven como advertencias y se registran.
func (uc *LifecycleUseCase) FinishRepair(ctx context.Context, actor domain.Actor, orderID string) (*dto.FinishRepairResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician); err != nil {
		return nil, err
	}
	var warnings []string
	res, err := uc.transition(ctx, actor, orderID, entity.StatusReadyForPickup, func(r repository.Repos, o *entity.RepairOrder) error {
		warnings = nil
		if err := requireAssigned(actor, o); err != nil {
			return err
		}
		est, err := inventory.ApprovedEstimate(ctx, r, o.ID)
		if err != nil {
			return err
		}
		for _, l := range est.Parts {
			if rem := l.Remaining(); rem > 0 {
				warnings = append(warnings, fmt.Sprintf("%s: %d de %d sin retirar", l.PartName, rem, l.Quantity))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		uc.log.Warn().Str("order_id", orderID).Strs("warnings", warnings).Msg("reparación terminada con repuestos sin retirar")
	}
	return &dto.FinishRepairResponse{Order: *res, Warnings: warnings}, nil
}

// UpdateNotes el técnico asignado edita el diagnóstico; el gerente sus notas.
func (uc *LifecycleUseCase) UpdateNotes(ctx context.Context, actor domain.Actor, orderID string, in dto.UpdateNotesRequest) (*dto.RepairOrderResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician, entity.RoleManager); err != nil {
		return nil, err
	}
	if in.DiagnosisNotes != nil && actor.Role != entity.RoleTechnician {
		return nil, fmt.Errorf("%w: solo el técnico edita el diagnóstico", domain.ErrForbidden)
	}
	if in.ManagerNotes != nil && actor.Role != entity.RoleManager {
		return nil, fmt.Errorf("%w: solo el gerente edita sus notas", domain.ErrForbidden)
	}
	var out *entity.RepairOrder
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := lockOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if lifecycle.IsTerminal(o.Status) {
			return fmt.Errorf("%w: la orden está cerrada", domain.ErrInvalidTransition)
		}
		if in.DiagnosisNotes != nil {
			if err := requireAssigned(actor, o); err != nil {
				return err
			}
			o.DiagnosisNotes = *in.DiagnosisNotes
		}
		if in.ManagerNotes != nil {
			o.ManagerNotes = *in.ManagerNotes
		}
		o.UpdatedAt = uc.now()
		out = o
		return r.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	res := dto.FromRepairOrder(out)
	return &res, nil
}

// transition bloquea la orden, corre guard (con la orden ya bloqueada) y aplica el cambio de estado.
func (uc *LifecycleUseCase) transition(
	ctx context.Context,
	actor domain.Actor,
	orderID string,
	to entity.OrderStatus,
	guard func(r repository.Repos, o *entity.RepairOrder) error,
) (*dto.RepairOrderResponse, error) {
	var (
		out *entity.RepairOrder
		ch  lifecycle.Change
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		o, err := lockOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if !lifecycle.CanTransition(o.Status, to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, to)
		}
		if guard != nil {
			if err := guard(r, o); err != nil {
				return err
			}
		}
		if ch, err = lifecycle.Apply(o, to, uc.now()); err != nil {
			return err
		}
		out = o
		return r.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Publish(ctx, actor.ID, []lifecycle.Change{ch})
	res := dto.FromRepairOrder(out)
	return &res, nil
}

func lockOrder(ctx context.Context, r repository.Repos, id string) (*entity.RepairOrder, error) {
	o, err := r.Orders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return o, nil
}

func requireAssigned(actor domain.Actor, o *entity.RepairOrder) error {
	if o.TechnicianID == "" || o.TechnicianID != actor.ID {
		return fmt.Errorf("%w: la orden %s no está asignada a este técnico", domain.ErrForbidden, o.ID)
	}
	return nil
}

func appendNote(notes, line string) string {
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
