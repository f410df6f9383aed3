// Package billing cierra la orden con el cobro y emite el documento de venta.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/application/order"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// SettlementUseCase cobro en la entrega: documento PAID y orden COMPLETED en una sola transacción.
type SettlementUseCase struct {
	tx     ports.TxRunner
	repos  repository.Repos
	pub    *ports.Publisher
	log    zerolog.Logger
	prefix string
	now    func() time.Time
}

func NewSettlementUseCase(tx ports.TxRunner, repos repository.Repos, pub *ports.Publisher, log zerolog.Logger, documentPrefix string) *SettlementUseCase {
	if documentPrefix == "" {
		documentPrefix = "FV"
	}
	return &SettlementUseCase{tx: tx, repos: repos, pub: pub, log: log, prefix: documentPrefix, now: time.Now}
}

// Settle exige la orden en READY_FOR_PICKUP con presupuesto aprobado. El monto es el total del presupuesto.
// Una segunda llamada falla con ErrInvalidTransition porque la orden ya está COMPLETED.
func (uc *SettlementUseCase) Settle(ctx context.Context, actor domain.Actor, orderID string, method entity.PaymentMethod) (*dto.InvoiceResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleOffice, entity.RoleClient); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: método de pago %q", domain.ErrValidation, method)
	}

	var (
		inv *entity.Invoice
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
		if err := order.CanView(actor, o); err != nil {
			return err
		}
		if o.Status != entity.StatusReadyForPickup {
			return fmt.Errorf("%w: cobro con la orden en %s", domain.ErrInvalidTransition, o.Status)
		}
		est, err := inventory.ApprovedEstimate(ctx, r, o.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidTransition, err)
		}
		seq, err := r.Invoices.NextSequence(ctx)
		if err != nil {
			return err
		}
		now := uc.now()
		inv = &entity.Invoice{
			ID:             uuid.New().String(),
			OrderID:        o.ID,
			ClientID:       o.ClientID,
			Amount:         est.TotalCost,
			PaymentMethod:  method,
			Status:         entity.DocumentPaid,
			DocumentNumber: fmt.Sprintf("%s-%d-%06d", uc.prefix, now.Year(), seq),
			IssueDate:      now,
			CreatedBy:      actor.ID,
		}
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if ch, err = lifecycle.Apply(o, entity.StatusCompleted, now); err != nil {
			return err
		}
		return r.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Publish(ctx, actor.ID, []lifecycle.Change{ch})
	uc.log.Info().
		Str("order_id", orderID).
		Str("document", inv.DocumentNumber).
		Str("amount", inv.Amount.StringFixed(2)).
		Str("method", string(method)).
		Msg("orden cobrada")
	res := dto.FromInvoice(inv)
	return &res, nil
}

func (uc *SettlementUseCase) GetInvoiceByOrder(ctx context.Context, actor domain.Actor, orderID string) (*dto.InvoiceResponse, error) {
	o, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, orderID)
	}
	if err := order.CanView(actor, o); err != nil {
		return nil, err
	}
	inv, err := uc.repos.Invoices.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: la orden %s no tiene documento", domain.ErrNotFound, orderID)
	}
	res := dto.FromInvoice(inv)
	return &res, nil
}
