package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/app/apptest"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// readyForPickup orden de 750.00 (2 x 100 + 550) lista para entregar.
func readyForPickup(t *testing.T, f *apptest.Fixture, client domain.Actor) string {
	t.Helper()
	part := f.Part("Pantalla", 5, "100.00")
	action := f.Action("Cambio de pantalla", "550.00")
	orderID, _ := f.Approved(client, []dto.EstimatePartInput{{PartID: part, Quantity: 2}}, action)
	_, err := f.Orders.ConsumePart(f.Ctx, f.Tech, orderID, dto.ConsumePartRequest{PartID: part, Quantity: 2})
	require.NoError(t, err)
	_, err = f.Orders.FinishRepair(f.Ctx, f.Tech, orderID)
	require.NoError(t, err)
	return orderID
}

func TestSettle_PaysAndCompletes(t *testing.T) {
	f := apptest.New(t)
	client := f.Client()
	orderID := readyForPickup(t, f, client)

	inv, err := f.Settlement.Settle(f.Ctx, client, orderID, entity.PaymentCard)
	require.NoError(t, err)
	assert.True(t, inv.Amount.Equal(decimal.RequireFromString("750.00")))
	assert.Equal(t, "CARD", inv.PaymentMethod)
	assert.Equal(t, "PAID", inv.Status)
	assert.Equal(t, client.ID, inv.ClientID)
	assert.Regexp(t, `^FV-\d{4}-\d{6}$`, inv.DocumentNumber)
	assert.Equal(t, entity.StatusCompleted, f.Status(orderID))

	_, err = f.Settlement.Settle(f.Ctx, client, orderID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := f.Settlement.GetInvoiceByOrder(f.Ctx, f.Office, orderID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
}

func TestSettle_PreconditionsLeaveOrderUntouched(t *testing.T) {
	f := apptest.New(t)
	client := f.Client()
	orderID := readyForPickup(t, f, client)

	_, err := f.Settlement.Settle(f.Ctx, client, orderID, entity.PaymentMethod("CHEQUE"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.Settlement.Settle(f.Ctx, f.Tech, orderID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.Settlement.Settle(f.Ctx, f.Client(), orderID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, entity.StatusReadyForPickup, f.Status(orderID))
}

func TestSettle_ExistingDocumentRollsBack(t *testing.T) {
	f := apptest.New(t)
	client := f.Client()
	orderID := readyForPickup(t, f, client)
	require.NoError(t, f.Repos.Invoices.Create(f.Ctx, &entity.Invoice{
		ID: "inv-previo", OrderID: orderID, ClientID: client.ID, Amount: decimal.NewFromInt(1),
		PaymentMethod: entity.PaymentCash, Status: entity.DocumentIssued, DocumentNumber: "FV-0", IssueDate: time.Now(),
	}))

	_, err := f.Settlement.Settle(f.Ctx, client, orderID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, entity.StatusReadyForPickup, f.Status(orderID))
}

func TestSettle_NotReady(t *testing.T) {
	f := apptest.New(t)
	client := f.Client()
	orderID := f.Diagnosing(client)

	_, err := f.Settlement.Settle(f.Ctx, f.Office, orderID, entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.Settlement.GetInvoiceByOrder(f.Ctx, f.Office, orderID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRenderDocument(t *testing.T) {
	f := apptest.New(t)
	client := f.Client()
	orderID := readyForPickup(t, f, client)

	_, _, err := f.Documents.RenderDocument(f.Ctx, client, orderID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inv, err := f.Settlement.Settle(f.Ctx, f.Office, orderID, entity.PaymentBankTransfer)
	require.NoError(t, err)

	pdf, name, err := f.Documents.RenderDocument(f.Ctx, client, orderID)
	require.NoError(t, err)
	assert.Contains(t, name, inv.DocumentNumber)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
