package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSparePartRequest alta de repuesto.
type CreateSparePartRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
}

// UpdateSparePartRequest edición de datos maestros; el stock solo cambia con retiros y recepciones.
type UpdateSparePartRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	MinQuantity *int             `json:"min_quantity"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string"`
}

type SparePartResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Low         bool            `json:"low"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockQuantityRequest retiro o recepción de un solo repuesto.
type StockQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type DeliveryItem struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

// ReceiveDeliveryRequest entrega del proveedor con uno o más repuestos.
type ReceiveDeliveryRequest struct {
	Items []DeliveryItem `json:"items"`
}

// ReceiptResult stock resultante y efectos de la conciliación.
type ReceiptResult struct {
	Parts               []SparePartResponse `json:"parts"`
	DeliveredPartOrders []string            `json:"delivered_part_orders"`
	PromotedOrders      []string            `json:"promoted_orders"`
}

// ShortageLine faltante por repuesto del presupuesto aprobado.
type ShortageLine struct {
	PartID   string `json:"part_id"`
	PartName string `json:"part_name"`
	Needed   int    `json:"needed"`
	OnHand   int    `json:"on_hand"`
	Missing  int    `json:"missing"`
}

type DiscrepancyRequest struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

type DiscrepancyResponse struct {
	ID         string    `json:"id"`
	PartID     string    `json:"part_id"`
	Quantity   int       `json:"quantity"`
	Reason     string    `json:"reason"`
	ReportedBy string    `json:"reported_by"`
	CreatedAt  time.Time `json:"created_at"`
}
