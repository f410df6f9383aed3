package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// LedgerUseCase libro de inventario: stock por repuesto, retiros, recepciones y faltantes.
// Cada repuesto se bloquea por separado (SELECT FOR UPDATE / mutex por clave); nunca hay un candado global.
type LedgerUseCase struct {
	tx         ports.TxRunner
	repos      repository.Repos
	reconciler ReceiptReconciler
	pub        *ports.Publisher
	log        zerolog.Logger
	now        func() time.Time
}

// NewLedgerUseCase construye el caso de uso. reconciler puede ser nil (solo acredita stock).
func NewLedgerUseCase(tx ports.TxRunner, repos repository.Repos, reconciler ReceiptReconciler, pub *ports.Publisher, log zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{tx: tx, repos: repos, reconciler: reconciler, pub: pub, log: log, now: time.Now}
}

var stockRoles = []entity.Role{entity.RoleWarehouse, entity.RoleManager}

// AddPart alta de repuesto en el catálogo de bodega.
func (uc *LedgerUseCase) AddPart(ctx context.Context, actor domain.Actor, in dto.CreateSparePartRequest) (*dto.SparePartResponse, error) {
	if err := domain.RequireRole(actor, stockRoles...); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Quantity < 0 || in.MinQuantity < 0 || in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: nombre, cantidades y precio no negativos", domain.ErrValidation)
	}
	now := uc.now()
	p := &entity.SparePart{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    strings.TrimSpace(in.Category),
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repos.Parts.Create(ctx, p); err != nil {
		return nil, err
	}
	out := dto.FromSparePart(p)
	return &out, nil
}

// UpdatePart cambia datos maestros. La cantidad no se toca aquí.
func (uc *LedgerUseCase) UpdatePart(ctx context.Context, actor domain.Actor, id string, in dto.UpdateSparePartRequest) (*dto.SparePartResponse, error) {
	if err := domain.RequireRole(actor, stockRoles...); err != nil {
		return nil, err
	}
	var out *entity.SparePart
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := r.Parts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, id)
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return fmt.Errorf("%w: nombre vacío", domain.ErrValidation)
			}
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
		}
		if in.MinQuantity != nil {
			if *in.MinQuantity < 0 {
				return fmt.Errorf("%w: mínimo negativo", domain.ErrValidation)
			}
			p.MinQuantity = *in.MinQuantity
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return fmt.Errorf("%w: precio negativo", domain.ErrValidation)
			}
			p.Price = *in.Price
		}
		p.UpdatedAt = uc.now()
		out = p
		return r.Parts.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	res := dto.FromSparePart(out)
	return &res, nil
}

func (uc *LedgerUseCase) GetPart(ctx context.Context, id string) (*dto.SparePartResponse, error) {
	p, err := uc.repos.Parts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, id)
	}
	out := dto.FromSparePart(p)
	return &out, nil
}

func (uc *LedgerUseCase) ListParts(ctx context.Context, category string) ([]dto.SparePartResponse, error) {
	return uc.list(ctx, repository.SparePartFilter{Category: category})
}

// LowStock repuestos con stock por debajo del mínimo.
func (uc *LedgerUseCase) LowStock(ctx context.Context) ([]dto.SparePartResponse, error) {
	return uc.list(ctx, repository.SparePartFilter{LowOnly: true})
}

func (uc *LedgerUseCase) list(ctx context.Context, f repository.SparePartFilter) ([]dto.SparePartResponse, error) {
	parts, err := uc.repos.Parts.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SparePartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.FromSparePart(p))
	}
	return out, nil
}

// Withdraw retira qty unidades. Si no alcanza falla con ErrInsufficientStock y no cambia nada.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, actor domain.Actor, partID string, qty int) (*dto.SparePartResponse, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician, entity.RoleWarehouse, entity.RoleManager); err != nil {
		return nil, err
	}
	var out *entity.SparePart
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		p, err := uc.WithdrawInTx(ctx, r, partID, qty)
		out = p
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.pub.Metrics().ObserveWithdrawal(qty)
	res := dto.FromSparePart(out)
	return &res, nil
}

// WithdrawInTx bloquea el repuesto y descuenta qty usando los repos de la transacción del llamador.
func (uc *LedgerUseCase) WithdrawInTx(ctx context.Context, r repository.Repos, partID string, qty int) (*entity.SparePart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrValidation)
	}
	p, err := r.Parts.GetForUpdate(ctx, partID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, partID)
	}
	if !inventory.CanWithdraw(qty, p.Quantity) {
		return nil, fmt.Errorf("%w: %s pide %d, hay %d", domain.ErrInsufficientStock, p.Name, qty, p.Quantity)
	}
	p.Quantity -= qty
	p.UpdatedAt = uc.now()
	if err := r.Parts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreditInTx suma qty al repuesto (bloqueándolo) dentro de la transacción del llamador.
func (uc *LedgerUseCase) CreditInTx(ctx context.Context, r repository.Repos, partID string, qty int) (*entity.SparePart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrValidation)
	}
	p, err := r.Parts.GetForUpdate(ctx, partID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, partID)
	}
	p.Quantity += qty
	p.UpdatedAt = uc.now()
	if err := r.Parts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// LockPartsInTx bloquea los repuestos en orden ascendente de id (antes de cualquier orden de reparación).
func LockPartsInTx(ctx context.Context, r repository.Repos, ids []string) (map[string]*entity.SparePart, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Strings(uniq)

	out := make(map[string]*entity.SparePart, len(uniq))
	for _, id := range uniq {
		p, err := r.Parts.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, id)
		}
		out[id] = p
	}
	return out, nil
}

// Receive recepción de un solo repuesto; concilia igual que ReceiveDelivery.
func (uc *LedgerUseCase) Receive(ctx context.Context, actor domain.Actor, partID string, qty int) (*dto.ReceiptResult, error) {
	return uc.ReceiveDelivery(ctx, actor, dto.ReceiveDeliveryRequest{Items: []dto.DeliveryItem{{PartID: partID, Quantity: qty}}})
}

// ReceiveDelivery acredita todos los repuestos de la entrega y concilia los pedidos abiertos de cada uno,
// todo en una transacción. Los repuestos se bloquean primero y las órdenes después, ambos en id ascendente.
func (uc *LedgerUseCase) ReceiveDelivery(ctx context.Context, actor domain.Actor, in dto.ReceiveDeliveryRequest) (*dto.ReceiptResult, error) {
	if err := domain.RequireRole(actor, stockRoles...); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: entrega sin ítems", domain.ErrValidation)
	}
	qty := make(map[string]int, len(in.Items))
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		if it.PartID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ítem con repuesto vacío o cantidad no positiva", domain.ErrValidation)
		}
		if _, ok := qty[it.PartID]; !ok {
			ids = append(ids, it.PartID)
		}
		qty[it.PartID] += it.Quantity
	}
	sort.Strings(ids)

	var (
		result  dto.ReceiptResult
		changes []lifecycle.Change
		total   int
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		result, changes, total = dto.ReceiptResult{}, nil, 0
		if _, err := LockPartsInTx(ctx, r, ids); err != nil {
			return err
		}
		for _, id := range ids {
			p, err := uc.CreditInTx(ctx, r, id, qty[id])
			if err != nil {
				return err
			}
			total += qty[id]
			result.Parts = append(result.Parts, dto.FromSparePart(p))
		}
		if uc.reconciler == nil {
			return nil
		}
		touched := make(map[string]bool)
		for _, id := range ids {
			rec, err := uc.reconciler.ReconcileInTx(ctx, r, id)
			if err != nil {
				return err
			}
			result.DeliveredPartOrders = append(result.DeliveredPartOrders, rec.DeliveredPartOrders...)
			for _, orderID := range rec.TouchedOrders {
				touched[orderID] = true
			}
		}
		// órdenes en id ascendente, siempre después de los repuestos
		orderIDs := make([]string, 0, len(touched))
		for id := range touched {
			orderIDs = append(orderIDs, id)
		}
		sort.Strings(orderIDs)
		for _, orderID := range orderIDs {
			ch, promoted, err := uc.reconciler.PromoteIfReadyInTx(ctx, r, orderID)
			if err != nil {
				return err
			}
			if promoted {
				changes = append(changes, ch)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ch := range changes {
		result.PromotedOrders = append(result.PromotedOrders, ch.OrderID)
		uc.pub.Metrics().ObservePromotion()
	}
	for range result.DeliveredPartOrders {
		uc.pub.Metrics().ObservePartOrderDelivered()
	}
	uc.pub.Metrics().ObserveReceipt(total)
	uc.log.Info().
		Str("actor_id", actor.ID).
		Int("items", len(ids)).
		Int("delivered_part_orders", len(result.DeliveredPartOrders)).
		Int("promoted_orders", len(result.PromotedOrders)).
		Msg("entrega recibida")
	uc.pub.Publish(ctx, actor.ID, changes)
	return &result, nil
}

// Shortage faltante por repuesto del presupuesto aprobado de la orden: max(0, necesario - en bodega).
// "Necesario" descuenta lo ya retirado para esa orden.
func (uc *LedgerUseCase) Shortage(ctx context.Context, actor domain.Actor, orderID string) ([]dto.ShortageLine, error) {
	if err := domain.RequireRole(actor, entity.RoleTechnician, entity.RoleWarehouse, entity.RoleManager, entity.RoleOffice); err != nil {
		return nil, err
	}
	est, err := ApprovedEstimate(ctx, uc.repos, orderID)
	if err != nil {
		return nil, err
	}
	return ShortageInTx(ctx, uc.repos, est)
}

// ShortageInTx calcula el faltante leyendo stock con los repos dados (el llamador decide si están bloqueados).
func ShortageInTx(ctx context.Context, r repository.Repos, est *entity.CostEstimate) ([]dto.ShortageLine, error) {
	needed := make(map[string]int)
	names := make(map[string]string)
	var ids []string
	for _, l := range est.Parts {
		if _, ok := needed[l.PartID]; !ok {
			ids = append(ids, l.PartID)
		}
		needed[l.PartID] += l.Remaining()
		names[l.PartID] = l.PartName
	}
	out := make([]dto.ShortageLine, 0, len(ids))
	for _, id := range ids {
		p, err := r.Parts.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		onHand := 0
		if p != nil {
			onHand = p.Quantity
		}
		out = append(out, dto.ShortageLine{
			PartID:   id,
			PartName: names[id],
			Needed:   needed[id],
			OnHand:   onHand,
			Missing:  inventory.Shortfall(needed[id], onHand),
		})
	}
	return out, nil
}

// HasShortage true si alguna línea tiene faltante.
func HasShortage(lines []dto.ShortageLine) bool {
	for _, l := range lines {
		if l.Missing > 0 {
			return true
		}
	}
	return false
}

// ApprovedEstimate presupuesto aprobado de la orden o ErrNotFound.
func ApprovedEstimate(ctx context.Context, r repository.Repos, orderID string) (*entity.CostEstimate, error) {
	list, err := r.Estimates.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].IsApproved() {
			return list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: la orden %s no tiene presupuesto aprobado", domain.ErrNotFound, orderID)
}

// ReportDiscrepancy registra una diferencia de stock. No ajusta la cantidad.
func (uc *LedgerUseCase) ReportDiscrepancy(ctx context.Context, actor domain.Actor, in dto.DiscrepancyRequest) (*dto.DiscrepancyResponse, error) {
	if err := domain.RequireRole(actor, stockRoles...); err != nil {
		return nil, err
	}
	if in.PartID == "" || in.Quantity == 0 || strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: repuesto, cantidad y motivo son obligatorios", domain.ErrValidation)
	}
	p, err := uc.repos.Parts.GetByID(ctx, in.PartID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: repuesto %s", domain.ErrNotFound, in.PartID)
	}
	d := &entity.StockDiscrepancy{
		ID:         uuid.New().String(),
		PartID:     in.PartID,
		Quantity:   in.Quantity,
		Reason:     strings.TrimSpace(in.Reason),
		ReportedBy: actor.ID,
		CreatedAt:  uc.now(),
	}
	if err := uc.repos.Discrepancies.Create(ctx, d); err != nil {
		return nil, err
	}
	uc.log.Warn().Str("part_id", d.PartID).Int("quantity", d.Quantity).Str("reason", d.Reason).Msg("diferencia de stock reportada")
	out := dto.FromDiscrepancy(d)
	return &out, nil
}

func (uc *LedgerUseCase) ListDiscrepancies(ctx context.Context, actor domain.Actor, partID string) ([]dto.DiscrepancyResponse, error) {
	if err := domain.RequireRole(actor, stockRoles...); err != nil {
		return nil, err
	}
	list, err := uc.repos.Discrepancies.List(ctx, partID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscrepancyResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.FromDiscrepancy(d))
	}
	return out, nil
}
