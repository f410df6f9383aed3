package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
	"github.com/jhoicas/Reparaciones-api/internal/domain/repository"
)

func seedPart(t *testing.T, s *Store, id string, qty int) {
	t.Helper()
	require.NoError(t, s.Repos().Parts.Create(context.Background(), &entity.SparePart{
		ID: id, Name: "Pantalla " + id, Quantity: qty, Price: decimal.NewFromInt(100),
	}))
}

func TestTxRunner_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedPart(t, s, "p1", 5)
	boom := errors.New("boom")

	err := NewTxRunner(s).Run(ctx, func(r repository.Repos) error {
		p, err := r.Parts.GetForUpdate(ctx, "p1")
		require.NoError(t, err)
		p.Quantity = 0
		require.NoError(t, r.Parts.Update(ctx, p))
		require.NoError(t, r.Orders.Create(ctx, &entity.RepairOrder{ID: "o1", Status: entity.StatusNew}))

		// la propia transacción ve lo escrito
		got, err := r.Parts.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 0, got.Quantity)
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Repos().Parts.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	o, err := s.Repos().Orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestTxRunner_CommitIsolatedUntilEnd(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedPart(t, s, "p1", 5)

	err := NewTxRunner(s).Run(ctx, func(r repository.Repos) error {
		p, _ := r.Parts.GetForUpdate(ctx, "p1")
		p.Quantity = 2
		require.NoError(t, r.Parts.Update(ctx, p))

		outside, _ := s.Repos().Parts.GetByID(ctx, "p1")
		assert.Equal(t, 5, outside.Quantity)
		return nil
	})
	require.NoError(t, err)

	p, _ := s.Repos().Parts.GetByID(ctx, "p1")
	assert.Equal(t, 2, p.Quantity)
}

func TestGetForUpdate_BlocksSecondTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedPart(t, s, "p1", 1)
	runner := NewTxRunner(s)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = runner.Run(ctx, func(r repository.Repos) error {
			_, _ = r.Parts.GetForUpdate(ctx, "p1")
			close(locked)
			<-release
			return nil
		})
		close(done)
	}()
	<-locked

	tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	err := runner.Run(tctx, func(r repository.Repos) error {
		_, err := r.Parts.GetForUpdate(tctx, "p1")
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	<-done

	err = runner.Run(ctx, func(r repository.Repos) error {
		_, err := r.Parts.GetForUpdate(ctx, "p1")
		return err
	})
	assert.NoError(t, err)
}

func TestGetForUpdate_Reentrant(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedPart(t, s, "p1", 1)

	err := NewTxRunner(s).Run(ctx, func(r repository.Repos) error {
		if _, err := r.Parts.GetForUpdate(ctx, "p1"); err != nil {
			return err
		}
		_, err := r.Parts.GetForUpdate(ctx, "p1")
		return err
	})
	assert.NoError(t, err)
}

func TestEstimates_OnePendingPerOrder(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	require.NoError(t, repos.Estimates.Create(ctx, &entity.CostEstimate{ID: "e1", OrderID: "o1"}))
	err := repos.Estimates.Create(ctx, &entity.CostEstimate{ID: "e2", OrderID: "o1"})
	assert.ErrorIs(t, err, domain.ErrEstimateConflict)

	// otra orden sí puede
	assert.NoError(t, repos.Estimates.Create(ctx, &entity.CostEstimate{ID: "e3", OrderID: "o2"}))
}

func TestInvoices_OnePerOrder(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	require.NoError(t, repos.Invoices.Create(ctx, &entity.Invoice{ID: "i1", OrderID: "o1"}))
	err := repos.Invoices.Create(ctx, &entity.Invoice{ID: "i2", OrderID: "o1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCommit_ValidatesAgainstConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	runner := NewTxRunner(s)

	inside := make(chan struct{})
	proceed := make(chan struct{})
	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = runner.Run(ctx, func(r repository.Repos) error {
			if err := r.Employees.Create(ctx, &entity.Employee{ID: "a", Email: "x@taller.co"}); err != nil {
				return err
			}
			close(inside)
			<-proceed
			return nil
		})
	}()
	<-inside
	require.NoError(t, s.Repos().Employees.Create(ctx, &entity.Employee{ID: "b", Email: "x@taller.co"}))
	close(proceed)
	wg.Wait()

	assert.ErrorIs(t, firstErr, domain.ErrDuplicate)
	all, _ := s.Repos().Employees.List(ctx, "")
	assert.Len(t, all, 1)
}

func TestPartOrders_ListOpenByPartFIFO(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repos.PartOrders.Create(ctx, &entity.PartOrder{ID: "late", PartID: "p", Status: entity.PartOrderOrdered, OrderDate: base.Add(2 * time.Hour)}))
	require.NoError(t, repos.PartOrders.Create(ctx, &entity.PartOrder{ID: "early", PartID: "p", Status: entity.PartOrderInDelivery, OrderDate: base}))
	require.NoError(t, repos.PartOrders.Create(ctx, &entity.PartOrder{ID: "done", PartID: "p", Status: entity.PartOrderDelivered, OrderDate: base}))
	require.NoError(t, repos.PartOrders.Create(ctx, &entity.PartOrder{ID: "other", PartID: "q", Status: entity.PartOrderOrdered, OrderDate: base}))

	open, err := repos.PartOrders.ListOpenByPart(ctx, "p")
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "early", open[0].ID)
	assert.Equal(t, "late", open[1].ID)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedPart(t, s, "p1", 3)

	p, _ := s.Repos().Parts.GetByID(ctx, "p1")
	p.Quantity = 99

	again, _ := s.Repos().Parts.GetByID(ctx, "p1")
	assert.Equal(t, 3, again.Quantity)
}
