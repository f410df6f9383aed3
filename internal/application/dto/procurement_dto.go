package dto

import "time"

// CreatePartOrderRequest pedido al proveedor; RepairOrderID opcional.
type CreatePartOrderRequest struct {
	PartID            string     `json:"part_id"`
	Quantity          int        `json:"quantity"`
	RepairOrderID     string     `json:"repair_order_id"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type MarkInDeliveryRequest struct {
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type PartOrderResponse struct {
	ID                string     `json:"id"`
	PartID            string     `json:"part_id"`
	Quantity          int        `json:"quantity"`
	Status            string     `json:"status"`
	RepairOrderID     string     `json:"repair_order_id,omitempty"`
	OrderDate         time.Time  `json:"order_date"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

// PartOrderChange resultado de cancelar: si la orden vinculada avanzó, viene en PromotedOrder.
type PartOrderChange struct {
	PartOrder     PartOrderResponse `json:"part_order"`
	PromotedOrder string            `json:"promoted_order,omitempty"`
}
