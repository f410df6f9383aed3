package procurement_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/app/apptest"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// Orden que necesita 3 de A y 2 de B con bodega vacía: solo se promueve cuando llegan ambos.
func TestReconcile_PromotesWhenAllPartsArrive(t *testing.T) {
	f := apptest.New(t)
	a := f.Part("A", 0, "10.00")
	b := f.Part("B", 0, "20.00")

	orderID, dec := f.Approved(f.Client(), []dto.EstimatePartInput{{PartID: a, Quantity: 3}, {PartID: b, Quantity: 2}})
	assert.Equal(t, string(entity.StatusWaitingForParts), dec.Order.Status)
	require.Len(t, dec.Backorders, 2)

	res, err := f.Ledger.Receive(f.Ctx, f.Warehouse, a, 3)
	require.NoError(t, err)
	assert.Len(t, res.DeliveredPartOrders, 1)
	assert.Empty(t, res.PromotedOrders)
	assert.Equal(t, entity.StatusWaitingForParts, f.Status(orderID))

	res, err = f.Ledger.Receive(f.Ctx, f.Warehouse, b, 1)
	require.NoError(t, err)
	assert.Empty(t, res.DeliveredPartOrders)
	assert.Equal(t, entity.StatusWaitingForParts, f.Status(orderID))

	res, err = f.Ledger.Receive(f.Ctx, f.Warehouse, b, 1)
	require.NoError(t, err)
	assert.Len(t, res.DeliveredPartOrders, 1)
	assert.Equal(t, []string{orderID}, res.PromotedOrders)
	assert.Equal(t, entity.StatusWaitingForTechnician, f.Status(orderID))

	// la entrega no descuenta: el stock queda para el retiro del técnico
	assert.Equal(t, 3, f.Stock(a))
	assert.Equal(t, 2, f.Stock(b))

	out, err := f.Orders.ResumeRepair(f.Ctx, f.Tech, orderID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusInProgress), out.Order.Status)
}

func TestReconcile_OldestFirst(t *testing.T) {
	f := apptest.New(t)
	p := f.Part("Flex", 0, "5.00")

	first, err := f.Procurement.CreatePartOrder(f.Ctx, f.Warehouse, dto.CreatePartOrderRequest{PartID: p, Quantity: 2})
	require.NoError(t, err)
	second, err := f.Procurement.CreatePartOrder(f.Ctx, f.Warehouse, dto.CreatePartOrderRequest{PartID: p, Quantity: 4})
	require.NoError(t, err)

	res, err := f.Ledger.Receive(f.Ctx, f.Warehouse, p, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID}, res.DeliveredPartOrders)

	got, err := f.Procurement.GetPartOrder(f.Ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PartOrderOrdered), got.Status)
}

func TestReconcile_InDeliveryStillOpen(t *testing.T) {
	f := apptest.New(t)
	p := f.Part("Flex", 0, "5.00")
	po, err := f.Procurement.CreatePartOrder(f.Ctx, f.Warehouse, dto.CreatePartOrderRequest{PartID: p, Quantity: 1})
	require.NoError(t, err)

	po, err = f.Procurement.MarkInDelivery(f.Ctx, f.Warehouse, po.ID, dto.MarkInDeliveryRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PartOrderInDelivery), po.Status)

	res, err := f.Ledger.Receive(f.Ctx, f.Warehouse, p, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{po.ID}, res.DeliveredPartOrders)
}

func TestCancelPartOrder_PromotesOrder(t *testing.T) {
	f := apptest.New(t)
	p := f.Part("Chip", 0, "50.00")
	orderID, dec := f.Approved(f.Client(), []dto.EstimatePartInput{{PartID: p, Quantity: 1}})
	require.Len(t, dec.Backorders, 1)

	ch, err := f.Procurement.CancelPartOrder(f.Ctx, f.Warehouse, dec.Backorders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PartOrderCancelled), ch.PartOrder.Status)
	assert.Equal(t, orderID, ch.PromotedOrder)
	assert.Equal(t, entity.StatusWaitingForTechnician, f.Status(orderID))

	_, err = f.Procurement.CancelPartOrder(f.Ctx, f.Warehouse, dec.Backorders[0].ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// crossedOrders deja dos órdenes en WAITING_FOR_PARTS con la cola FIFO cruzada:
// X tiene pedidos de o1 y luego o2; Y tiene pedidos de o2 y luego o1.
func crossedOrders(t *testing.T, f *apptest.Fixture) (x, y, o1, o2 string) {
	t.Helper()
	x = f.Part("X", 0, "10.00")
	y = f.Part("Y", 0, "10.00")

	o1, dec := f.Approved(f.Client(), []dto.EstimatePartInput{{PartID: x, Quantity: 1}})
	require.Len(t, dec.Backorders, 1)
	o2, dec = f.Approved(f.Client(), []dto.EstimatePartInput{{PartID: x, Quantity: 1}, {PartID: y, Quantity: 1}})
	require.Len(t, dec.Backorders, 2)
	_, err := f.Procurement.CreatePartOrder(f.Ctx, f.Warehouse, dto.CreatePartOrderRequest{PartID: y, Quantity: 1, RepairOrderID: o1})
	require.NoError(t, err)

	require.Equal(t, entity.StatusWaitingForParts, f.Status(o1))
	require.Equal(t, entity.StatusWaitingForParts, f.Status(o2))
	return x, y, o1, o2
}

func TestReceiveDelivery_CrossedQueuesPromoteInIDOrder(t *testing.T) {
	f := apptest.New(t)
	x, y, o1, o2 := crossedOrders(t, f)

	res, err := f.Ledger.ReceiveDelivery(f.Ctx, f.Warehouse, dto.ReceiveDeliveryRequest{Items: []dto.DeliveryItem{
		{PartID: y, Quantity: 2},
		{PartID: x, Quantity: 2},
	}})
	require.NoError(t, err)
	assert.Len(t, res.DeliveredPartOrders, 4)

	want := []string{o1, o2}
	sort.Strings(want)
	assert.Equal(t, want, res.PromotedOrders)
	assert.Equal(t, entity.StatusWaitingForTechnician, f.Status(o1))
	assert.Equal(t, entity.StatusWaitingForTechnician, f.Status(o2))
}

// Dos recepciones simultáneas, una por repuesto, sobre colas cruzadas: ninguna queda esperando a la otra.
func TestReceive_ConcurrentCrossedQueuesDoNotDeadlock(t *testing.T) {
	f := apptest.New(t)
	x, y, o1, o2 := crossedOrders(t, f)

	ctx, cancel := context.WithTimeout(f.Ctx, 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, part := range []string{x, y} {
		wg.Add(1)
		go func(i int, part string) {
			defer wg.Done()
			_, errs[i] = f.Ledger.Receive(ctx, f.Warehouse, part, 2)
		}(i, part)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, entity.StatusWaitingForTechnician, f.Status(o1))
	assert.Equal(t, entity.StatusWaitingForTechnician, f.Status(o2))
	assert.Equal(t, 2, f.Stock(x))
	assert.Equal(t, 2, f.Stock(y))
}
