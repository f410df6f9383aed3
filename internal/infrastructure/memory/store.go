// Package memory implementa los repositorios en memoria (tests y desarrollo) con la misma
// semántica transaccional que el adaptador PostgreSQL: bloqueo por entidad y escrituras
// descartadas si la transacción falla.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

// Store estado compartido de todas las colecciones.
type Store struct {
	mu    sync.RWMutex
	locks *keyLocker

	employees     *table[entity.Employee]
	clients       *table[entity.Client]
	parts         *table[entity.SparePart]
	actions       *table[entity.ServiceAction]
	orders        *table[entity.RepairOrder]
	estimates     *table[entity.CostEstimate]
	partOrders    *table[entity.PartOrder]
	invoices      *table[entity.Invoice]
	workLogs      *table[entity.WorkLog]
	discrepancies *table[entity.StockDiscrepancy]

	orderSeq   atomic.Int64
	invoiceSeq atomic.Int64
}

func NewStore() *Store {
	return &Store{
		locks: newKeyLocker(),
		employees: newTable("employee", func(e *entity.Employee) string { return e.ID }, shallow[entity.Employee],
			func(other, row *entity.Employee) error {
				if other.Email == row.Email {
					return fmt.Errorf("%w: email %s", domain.ErrDuplicate, row.Email)
				}
				return nil
			}),
		clients: newTable("client", func(c *entity.Client) string { return c.ID }, shallow[entity.Client],
			func(other, row *entity.Client) error {
				if other.Phone == row.Phone {
					return fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, row.Phone)
				}
				return nil
			}),
		parts:   newTable("spare_part", func(p *entity.SparePart) string { return p.ID }, shallow[entity.SparePart], nil),
		actions: newTable("service_action", func(a *entity.ServiceAction) string { return a.ID }, shallow[entity.ServiceAction], nil),
		orders: newTable("repair_order", func(o *entity.RepairOrder) string { return o.ID },
			func(o *entity.RepairOrder) *entity.RepairOrder { return o.Clone() }, nil),
		estimates: newTable("cost_estimate", func(e *entity.CostEstimate) string { return e.ID },
			func(e *entity.CostEstimate) *entity.CostEstimate { return e.Clone() },
			func(other, row *entity.CostEstimate) error {
				if other.OrderID == row.OrderID && other.IsPending() && row.IsPending() {
					return fmt.Errorf("%w: orden %s", domain.ErrEstimateConflict, row.OrderID)
				}
				return nil
			}),
		partOrders: newTable("part_order", func(p *entity.PartOrder) string { return p.ID },
			func(p *entity.PartOrder) *entity.PartOrder { return p.Clone() }, nil),
		invoices: newTable("invoice", func(i *entity.Invoice) string { return i.ID }, shallow[entity.Invoice],
			func(other, row *entity.Invoice) error {
				if other.OrderID == row.OrderID {
					return fmt.Errorf("%w: la orden %s ya tiene documento", domain.ErrDuplicate, row.OrderID)
				}
				return nil
			}),
		workLogs: newTable("work_log", func(w *entity.WorkLog) string { return w.ID },
			func(w *entity.WorkLog) *entity.WorkLog {
				c := *w
				if w.EndTime != nil {
					t := *w.EndTime
					c.EndTime = &t
				}
				return &c
			},
			func(other, row *entity.WorkLog) error {
				if other.IsOpen() && row.IsOpen() && other.OrderID == row.OrderID && other.TechnicianID == row.TechnicianID {
					return fmt.Errorf("%w: ya hay un tramo abierto", domain.ErrDuplicate)
				}
				return nil
			}),
		discrepancies: newTable("stock_discrepancy", func(d *entity.StockDiscrepancy) string { return d.ID },
			shallow[entity.StockDiscrepancy], nil),
	}
}

type committer interface {
	validate() error
	apply()
	reset()
}

// txn transacción en memoria: claves bloqueadas hasta el fin y escrituras en vistas.
type txn struct {
	s    *Store
	held map[string]struct{}
	keys []string

	employees     *view[entity.Employee]
	clients       *view[entity.Client]
	parts         *view[entity.SparePart]
	actions       *view[entity.ServiceAction]
	orders        *view[entity.RepairOrder]
	estimates     *view[entity.CostEstimate]
	partOrders    *view[entity.PartOrder]
	invoices      *view[entity.Invoice]
	workLogs      *view[entity.WorkLog]
	discrepancies *view[entity.StockDiscrepancy]
}

func (s *Store) begin() *txn {
	return &txn{
		s:             s,
		held:          make(map[string]struct{}),
		employees:     newView(s, s.employees),
		clients:       newView(s, s.clients),
		parts:         newView(s, s.parts),
		actions:       newView(s, s.actions),
		orders:        newView(s, s.orders),
		estimates:     newView(s, s.estimates),
		partOrders:    newView(s, s.partOrders),
		invoices:      newView(s, s.invoices),
		workLogs:      newView(s, s.workLogs),
		discrepancies: newView(s, s.discrepancies),
	}
}

func (tx *txn) views() []committer {
	return []committer{tx.employees, tx.clients, tx.parts, tx.actions, tx.orders, tx.estimates,
		tx.partOrders, tx.invoices, tx.workLogs, tx.discrepancies}
}

// lock es reentrante dentro de la misma transacción.
func (tx *txn) lock(ctx context.Context, key string) error {
	if _, ok := tx.held[key]; ok {
		return nil
	}
	if err := tx.s.locks.acquire(ctx, key); err != nil {
		return err
	}
	tx.held[key] = struct{}{}
	tx.keys = append(tx.keys, key)
	return nil
}

func (tx *txn) commit() error {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	for _, v := range tx.views() {
		if err := v.validate(); err != nil {
			return err
		}
	}
	for _, v := range tx.views() {
		v.apply()
	}
	return nil
}

func (tx *txn) rollback() {
	for _, v := range tx.views() {
		v.reset()
	}
}

func (tx *txn) releaseLocks() {
	for i := len(tx.keys) - 1; i >= 0; i-- {
		tx.s.locks.release(tx.keys[i])
	}
	tx.keys = nil
	tx.held = make(map[string]struct{})
}

// session decide si las operaciones van contra una transacción abierta o se confirman una a una.
type session interface {
	with(ctx context.Context, fn func(tx *txn) error) error
}

type txSession struct{ tx *txn }

func (s txSession) with(ctx context.Context, fn func(tx *txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.tx)
}

type autoSession struct{ s *Store }

func (a autoSession) with(ctx context.Context, fn func(tx *txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := a.s.begin()
	defer tx.releaseLocks()
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return tx.commit()
}

// Repos repositorios sin transacción: cada llamada se confirma sola.
func (s *Store) Repos() repository.Repos {
	return newRepos(autoSession{s: s})
}
