// Package lifecycle contiene el grafo de estados de la orden de reparación.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

var allowedTransitions = map[entity.OrderStatus]map[entity.OrderStatus]bool{
	entity.StatusNew:                  {entity.StatusWaitingForTechnician: true},
	entity.StatusWaitingForTechnician: {entity.StatusDiagnosing: true, entity.StatusInProgress: true},
	entity.StatusDiagnosing:           {entity.StatusWaitingForAcceptance: true, entity.StatusCancelled: true},
	entity.StatusWaitingForAcceptance: {
		entity.StatusInProgress:      true,
		entity.StatusWaitingForParts: true,
		entity.StatusCancelled:       true,
	},
	entity.StatusInProgress:      {entity.StatusWaitingForParts: true, entity.StatusReadyForPickup: true},
	entity.StatusWaitingForParts: {entity.StatusWaitingForTechnician: true},
	entity.StatusReadyForPickup:  {entity.StatusCompleted: true},
	entity.StatusCompleted:       {},
	entity.StatusCancelled:       {},
}

// ParseStatus valida un estado recibido desde fuera (query params, filas).
func ParseStatus(s string) (entity.OrderStatus, error) {
	st := entity.OrderStatus(s)
	if _, ok := allowedTransitions[st]; !ok {
		return "", fmt.Errorf("%w: estado desconocido %q", domain.ErrValidation, s)
	}
	return st, nil
}

func CanTransition(from, to entity.OrderStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

func IsTerminal(s entity.OrderStatus) bool {
	return s == entity.StatusCompleted || s == entity.StatusCancelled
}

// Change transición aplicada; se publica después del commit.
type Change struct {
	OrderID string
	From    entity.OrderStatus
	To      entity.OrderStatus
	At      time.Time
}

// Apply mueve la orden a `to` si el grafo lo permite. Marca StartDate al entrar a DIAGNOSING por primera vez
// y EndDate al llegar a un estado terminal. No persiste.
func Apply(o *entity.RepairOrder, to entity.OrderStatus, now time.Time) (Change, error) {
	if !CanTransition(o.Status, to) {
		return Change{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, to)
	}
	ch := Change{OrderID: o.ID, From: o.Status, To: to, At: now}
	o.Status = to
	o.UpdatedAt = now
	if to == entity.StatusDiagnosing && o.StartDate == nil {
		t := now
		o.StartDate = &t
	}
	if IsTerminal(to) {
		t := now
		o.EndDate = &t
	}
	return ch, nil
}
