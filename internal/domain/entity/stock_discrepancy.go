package entity

import "time"

// StockDiscrepancy diferencia reportada por bodega entre el sistema y lo físico. No ajusta stock.
type StockDiscrepancy struct {
	ID         string
	PartID     string
	Quantity   int
	Reason     string
	ReportedBy string
	CreatedAt  time.Time
}
