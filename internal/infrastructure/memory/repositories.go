package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

func newRepos(s session) repository.Repos {
	return repository.Repos{
		Employees:     &employeeRepo{s},
		Clients:       &clientRepo{s},
		Parts:         &sparePartRepo{s},
		Actions:       &serviceActionRepo{s},
		Orders:        &repairOrderRepo{s},
		Estimates:     &costEstimateRepo{s},
		PartOrders:    &partOrderRepo{s},
		Invoices:      &invoiceRepo{s},
		WorkLogs:      &workLogRepo{s},
		Discrepancies: &discrepancyRepo{s},
	}
}

func read[R any](ctx context.Context, s session, fn func(tx *txn) R) (R, error) {
	var out R
	err := s.with(ctx, func(tx *txn) error {
		out = fn(tx)
		return nil
	})
	return out, err
}

func filter[T any](rows []*T, keep func(*T) bool) []*T {
	out := rows[:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ---- employees

type employeeRepo struct{ s session }

func (r *employeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.employees.insert(e) })
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return read(ctx, r.s, func(tx *txn) *entity.Employee { return tx.employees.get(id) })
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return read(ctx, r.s, func(tx *txn) *entity.Employee {
		for _, e := range tx.employees.list() {
			if strings.EqualFold(e.Email, email) {
				return e
			}
		}
		return nil
	})
}

func (r *employeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.employees.update(e) })
}

func (r *employeeRepo) List(ctx context.Context, role entity.Role) ([]*entity.Employee, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.Employee {
		return filter(tx.employees.list(), func(e *entity.Employee) bool { return role == "" || e.Role == role })
	})
}

// ---- clients

type clientRepo struct{ s session }

func (r *clientRepo) Create(ctx context.Context, c *entity.Client) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.clients.insert(c) })
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return read(ctx, r.s, func(tx *txn) *entity.Client { return tx.clients.get(id) })
}

func (r *clientRepo) GetByPhone(ctx context.Context, phone string) (*entity.Client, error) {
	return read(ctx, r.s, func(tx *txn) *entity.Client {
		for _, c := range tx.clients.list() {
			if c.Phone == phone {
				return c
			}
		}
		return nil
	})
}

func (r *clientRepo) Update(ctx context.Context, c *entity.Client) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.clients.update(c) })
}

func (r *clientRepo) List(ctx context.Context, search string) ([]*entity.Client, error) {
	q := strings.ToLower(strings.TrimSpace(search))
	return read(ctx, r.s, func(tx *txn) []*entity.Client {
		return filter(tx.clients.list(), func(c *entity.Client) bool {
			if q == "" {
				return true
			}
			return strings.Contains(strings.ToLower(c.FullName()), q) || strings.Contains(c.Phone, q)
		})
	})
}

// ---- spare parts

type sparePartRepo struct{ s session }

func (r *sparePartRepo) Create(ctx context.Context, p *entity.SparePart) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.parts.insert(p) })
}

func (r *sparePartRepo) GetByID(ctx context.Context, id string) (*entity.SparePart, error) {
	return read(ctx, r.s, func(tx *txn) *entity.SparePart { return tx.parts.get(id) })
}

func (r *sparePartRepo) GetForUpdate(ctx context.Context, id string) (*entity.SparePart, error) {
	var out *entity.SparePart
	err := r.s.with(ctx, func(tx *txn) error {
		if err := tx.lock(ctx, partKey(id)); err != nil {
			return err
		}
		out = tx.parts.get(id)
		return nil
	})
	return out, err
}

func (r *sparePartRepo) Update(ctx context.Context, p *entity.SparePart) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.parts.update(p) })
}

func (r *sparePartRepo) List(ctx context.Context, f repository.SparePartFilter) ([]*entity.SparePart, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.SparePart {
		out := filter(tx.parts.list(), func(p *entity.SparePart) bool {
			if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
				return false
			}
			return !f.LowOnly || p.IsLow()
		})
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	})
}

// ---- service actions

type serviceActionRepo struct{ s session }

func (r *serviceActionRepo) Create(ctx context.Context, a *entity.ServiceAction) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.actions.insert(a) })
}

func (r *serviceActionRepo) GetByID(ctx context.Context, id string) (*entity.ServiceAction, error) {
	return read(ctx, r.s, func(tx *txn) *entity.ServiceAction { return tx.actions.get(id) })
}

func (r *serviceActionRepo) Update(ctx context.Context, a *entity.ServiceAction) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.actions.update(a) })
}

func (r *serviceActionRepo) List(ctx context.Context) ([]*entity.ServiceAction, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.ServiceAction { return tx.actions.list() })
}

// ---- repair orders

type repairOrderRepo struct{ s session }

func (r *repairOrderRepo) Create(ctx context.Context, o *entity.RepairOrder) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.orders.insert(o) })
}

func (r *repairOrderRepo) GetByID(ctx context.Context, id string) (*entity.RepairOrder, error) {
	return read(ctx, r.s, func(tx *txn) *entity.RepairOrder { return tx.orders.get(id) })
}

func (r *repairOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.RepairOrder, error) {
	var out *entity.RepairOrder
	err := r.s.with(ctx, func(tx *txn) error {
		if err := tx.lock(ctx, orderKey(id)); err != nil {
			return err
		}
		out = tx.orders.get(id)
		return nil
	})
	return out, err
}

func (r *repairOrderRepo) Update(ctx context.Context, o *entity.RepairOrder) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.orders.update(o) })
}

func (r *repairOrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.RepairOrder, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.RepairOrder {
		out := filter(tx.orders.list(), func(o *entity.RepairOrder) bool {
			return (f.Status == "" || o.Status == f.Status) &&
				(f.ClientID == "" || o.ClientID == f.ClientID) &&
				(f.TechnicianID == "" || o.TechnicianID == f.TechnicianID)
		})
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return page(out, f.Offset, f.Limit)
	})
}

func (r *repairOrderRepo) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int, error) {
	return read(ctx, r.s, func(tx *txn) map[entity.OrderStatus]int {
		out := make(map[entity.OrderStatus]int)
		for _, o := range tx.orders.list() {
			out[o.Status]++
		}
		return out
	})
}

func (r *repairOrderRepo) NextNumber(ctx context.Context) (int64, error) {
	return read(ctx, r.s, func(tx *txn) int64 { return tx.s.orderSeq.Add(1) })
}

func page[T any](rows []*T, offset, limit int) []*T {
	if offset > 0 {
		if offset >= len(rows) {
			return []*T{}
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// ---- cost estimates

type costEstimateRepo struct{ s session }

func (r *costEstimateRepo) Create(ctx context.Context, e *entity.CostEstimate) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.estimates.insert(e) })
}

func (r *costEstimateRepo) GetByID(ctx context.Context, id string) (*entity.CostEstimate, error) {
	return read(ctx, r.s, func(tx *txn) *entity.CostEstimate { return tx.estimates.get(id) })
}

func (r *costEstimateRepo) Update(ctx context.Context, e *entity.CostEstimate) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.estimates.update(e) })
}

func (r *costEstimateRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.CostEstimate, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.CostEstimate {
		return filter(tx.estimates.list(), func(e *entity.CostEstimate) bool { return e.OrderID == orderID })
	})
}

// ---- part orders

type partOrderRepo struct{ s session }

func (r *partOrderRepo) Create(ctx context.Context, p *entity.PartOrder) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.partOrders.insert(p) })
}

func (r *partOrderRepo) GetByID(ctx context.Context, id string) (*entity.PartOrder, error) {
	return read(ctx, r.s, func(tx *txn) *entity.PartOrder { return tx.partOrders.get(id) })
}

func (r *partOrderRepo) Update(ctx context.Context, p *entity.PartOrder) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.partOrders.update(p) })
}

func (r *partOrderRepo) ListOpenByPart(ctx context.Context, partID string) ([]*entity.PartOrder, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.PartOrder {
		out := filter(tx.partOrders.list(), func(p *entity.PartOrder) bool { return p.PartID == partID && p.IsOpen() })
		sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.Before(out[j].OrderDate) })
		return out
	})
}

func (r *partOrderRepo) ListByRepairOrder(ctx context.Context, repairOrderID string) ([]*entity.PartOrder, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.PartOrder {
		return filter(tx.partOrders.list(), func(p *entity.PartOrder) bool { return p.RepairOrderID == repairOrderID })
	})
}

func (r *partOrderRepo) List(ctx context.Context, f repository.PartOrderFilter) ([]*entity.PartOrder, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.PartOrder {
		return filter(tx.partOrders.list(), func(p *entity.PartOrder) bool {
			return (f.Status == "" || p.Status == f.Status) && (f.PartID == "" || p.PartID == f.PartID)
		})
	})
}

// ---- invoices

type invoiceRepo struct{ s session }

func (r *invoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.invoices.insert(inv) })
}

func (r *invoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return read(ctx, r.s, func(tx *txn) *entity.Invoice { return tx.invoices.get(id) })
}

func (r *invoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	return read(ctx, r.s, func(tx *txn) *entity.Invoice {
		for _, inv := range tx.invoices.list() {
			if inv.OrderID == orderID {
				return inv
			}
		}
		return nil
	})
}

func (r *invoiceRepo) NextSequence(ctx context.Context) (int64, error) {
	return read(ctx, r.s, func(tx *txn) int64 { return tx.s.invoiceSeq.Add(1) })
}

// ---- work logs

type workLogRepo struct{ s session }

func (r *workLogRepo) Create(ctx context.Context, w *entity.WorkLog) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.workLogs.insert(w) })
}

func (r *workLogRepo) Update(ctx context.Context, w *entity.WorkLog) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.workLogs.update(w) })
}

func (r *workLogRepo) GetOpen(ctx context.Context, orderID, technicianID string) (*entity.WorkLog, error) {
	return read(ctx, r.s, func(tx *txn) *entity.WorkLog {
		for _, w := range tx.workLogs.list() {
			if w.OrderID == orderID && w.TechnicianID == technicianID && w.IsOpen() {
				return w
			}
		}
		return nil
	})
}

func (r *workLogRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.WorkLog, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.WorkLog {
		return filter(tx.workLogs.list(), func(w *entity.WorkLog) bool { return w.OrderID == orderID })
	})
}

// ---- discrepancies

type discrepancyRepo struct{ s session }

func (r *discrepancyRepo) Create(ctx context.Context, d *entity.StockDiscrepancy) error {
	return r.s.with(ctx, func(tx *txn) error { return tx.discrepancies.insert(d) })
}

func (r *discrepancyRepo) List(ctx context.Context, partID string) ([]*entity.StockDiscrepancy, error) {
	return read(ctx, r.s, func(tx *txn) []*entity.StockDiscrepancy {
		return filter(tx.discrepancies.list(), func(d *entity.StockDiscrepancy) bool { return partID == "" || d.PartID == partID })
	})
}

func partKey(id string) string  { return "part:" + id }
func orderKey(id string) string { return "order:" + id }
