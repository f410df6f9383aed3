// Package xlsx escribe reportes en hojas de cálculo con excelize.
package xlsx

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Reparaciones-api/internal/application/report"
)

var _ report.SheetWriter = (*OrdersWriter)(nil)

const ordersSheet = "Ordenes"

type OrdersWriter struct{}

func NewOrdersWriter() *OrdersWriter { return &OrdersWriter{} }

func (w *OrdersWriter) WriteOrders(rows []report.OrderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(ordersSheet)
	if err != nil {
		return nil, err
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Orden", "Estado", "Cliente", "Técnico", "Equipo", "Creada", "Cerrada", "Minutos", "Total cobrado"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(ordersSheet, cell, v)
	}
	for r, o := range rows {
		closed := ""
		if o.EndDate != nil {
			closed = o.EndDate.Format("2006-01-02")
		}
		values := []any{
			o.Number,
			o.Status,
			o.Client,
			o.Technician,
			o.Device,
			o.CreatedAt.Format("2006-01-02"),
			closed,
			o.WorkMinutes,
			o.InvoiceTotal,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(ordersSheet, cell, v)
		}
	}

	_ = f.SetColWidth(ordersSheet, "A", "B", 22)
	_ = f.SetColWidth(ordersSheet, "C", "E", 28)
	_ = f.SetColWidth(ordersSheet, "F", "I", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
