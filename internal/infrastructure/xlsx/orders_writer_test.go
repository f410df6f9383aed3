package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/report"
)

func TestWriteOrders(t *testing.T) {
	rows := []report.OrderRow{
		{Number: "RO-000001", Status: "COMPLETED", Client: "Ana Pérez", Device: "Laptop", CreatedAt: time.Now(), WorkMinutes: 45, InvoiceTotal: "750.00"},
		{Number: "RO-000002", Status: "NEW", Client: "Luis Gómez", Device: "Celular", CreatedAt: time.Now()},
	}

	data, err := NewOrdersWriter().WriteOrders(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Orden", got[0][0])
	assert.Equal(t, "RO-000001", got[1][0])
	assert.Equal(t, "750.00", got[1][8])
	assert.Equal(t, "NEW", got[2][1])
}
