package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/app/apptest"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/report"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type rowsCapture struct{ rows []report.OrderRow }

func (w *rowsCapture) WriteOrders(rows []report.OrderRow) ([]byte, error) {
	w.rows = rows
	return []byte("xlsx"), nil
}

func TestStatusSummary(t *testing.T) {
	f := apptest.New(t)
	client := f.Client()
	f.Diagnosing(client)
	cancelled := f.Diagnosing(client)
	_, err := f.Orders.MarkUnrepairable(f.Ctx, f.Tech, cancelled, "sin repuesto en el mercado")
	require.NoError(t, err)

	out, err := f.Reports.StatusSummary(f.Ctx, f.Manager)
	require.NoError(t, err)
	assert.Len(t, out.Counts, len(entity.AllOrderStatuses))
	assert.Equal(t, 1, out.Counts[string(entity.StatusDiagnosing)])
	assert.Equal(t, 1, out.Counts[string(entity.StatusCancelled)])
	assert.Equal(t, 0, out.Counts[string(entity.StatusNew)])
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Open)

	_, err = f.Reports.StatusSummary(f.Ctx, f.Office)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExportOrders_ResolvesNamesAndFilters(t *testing.T) {
	f := apptest.New(t)
	w := &rowsCapture{}
	uc := report.NewReportUseCase(f.Repos, w)
	client := f.Client()
	id := f.Diagnosing(client)
	_, err := f.Orders.Create(f.Ctx, f.Office, dto.CreateOrderRequest{ClientID: client.ID, DeviceDescription: "Tablet", ProblemDescription: "Pantalla"})
	require.NoError(t, err)

	data, name, err := uc.ExportOrders(f.Ctx, f.Manager, string(entity.StatusDiagnosing))
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Regexp(t, `^ordenes_\d{8}\.xlsx$`, name)
	require.Len(t, w.rows, 1)
	row := w.rows[0]
	o, err := f.Orders.Get(f.Ctx, f.Manager, id)
	require.NoError(t, err)
	assert.Equal(t, o.Number, row.Number)
	assert.Equal(t, "Cliente Prueba", row.Client)
	assert.Equal(t, "TECHNICIAN Prueba", row.Technician)
	assert.Empty(t, row.InvoiceTotal)

	_, _, err = uc.ExportOrders(f.Ctx, f.Manager, "PERDIDA")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = uc.ExportOrders(f.Ctx, f.Tech, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
