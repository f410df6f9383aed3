package memory

import (
	"fmt"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
)

// table filas confirmadas de una colección, en orden de inserción.
type table[T any] struct {
	name  string
	rows  map[string]*T
	seq   []string
	id    func(*T) string
	clone func(*T) *T
	// unique se llama con cada otra fila visible; devuelve error si row no puede convivir con other.
	unique func(other, row *T) error
}

func newTable[T any](name string, id func(*T) string, clone func(*T) *T, unique func(other, row *T) error) *table[T] {
	return &table[T]{name: name, rows: make(map[string]*T), id: id, clone: clone, unique: unique}
}

func shallow[T any](v *T) *T {
	c := *v
	return &c
}

// view escrituras de una transacción sobre una tabla. Lee sus propias escrituras.
type view[T any] struct {
	s      *Store
	t      *table[T]
	staged map[string]*T
	added  []string
}

func newView[T any](s *Store, t *table[T]) *view[T] {
	return &view[T]{s: s, t: t, staged: make(map[string]*T)}
}

func (v *view[T]) get(id string) *T {
	if r, ok := v.staged[id]; ok {
		return v.t.clone(r)
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if r, ok := v.t.rows[id]; ok {
		return v.t.clone(r)
	}
	return nil
}

func (v *view[T]) list() []*T {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.listLocked()
}

// listLocked requiere s.mu tomado (lectura o escritura).
func (v *view[T]) listLocked() []*T {
	out := make([]*T, 0, len(v.t.seq)+len(v.added))
	for _, id := range v.t.seq {
		if r, ok := v.staged[id]; ok {
			out = append(out, v.t.clone(r))
			continue
		}
		out = append(out, v.t.clone(v.t.rows[id]))
	}
	for _, id := range v.added {
		out = append(out, v.t.clone(v.staged[id]))
	}
	return out
}

func (v *view[T]) checkUnique(rows []*T, row *T) error {
	if v.t.unique == nil {
		return nil
	}
	id := v.t.id(row)
	for _, other := range rows {
		if v.t.id(other) == id {
			continue
		}
		if err := v.t.unique(other, row); err != nil {
			return err
		}
	}
	return nil
}

func (v *view[T]) insert(row *T) error {
	id := v.t.id(row)
	if id == "" {
		return fmt.Errorf("%w: %s sin id", domain.ErrValidation, v.t.name)
	}
	if v.get(id) != nil {
		return fmt.Errorf("%w: %s %s", domain.ErrDuplicate, v.t.name, id)
	}
	if err := v.checkUnique(v.list(), row); err != nil {
		return err
	}
	v.staged[id] = v.t.clone(row)
	v.added = append(v.added, id)
	return nil
}

func (v *view[T]) update(row *T) error {
	id := v.t.id(row)
	if v.get(id) == nil {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, v.t.name, id)
	}
	if err := v.checkUnique(v.list(), row); err != nil {
		return err
	}
	v.staged[id] = v.t.clone(row)
	return nil
}

// validate revisa las restricciones contra lo confirmado por otras transacciones. Requiere s.mu.Lock.
func (v *view[T]) validate() error {
	rows := v.listLocked()
	for _, r := range v.staged {
		if err := v.checkUnique(rows, r); err != nil {
			return err
		}
	}
	return nil
}

// apply vuelca lo escrito a la tabla. Requiere s.mu.Lock.
func (v *view[T]) apply() {
	for id, r := range v.staged {
		v.t.rows[id] = r
	}
	v.t.seq = append(v.t.seq, v.added...)
	v.reset()
}

func (v *view[T]) reset() {
	v.staged = make(map[string]*T)
	v.added = nil
}
