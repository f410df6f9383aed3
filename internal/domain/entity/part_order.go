package entity

import "time"

type PartOrderStatus string

const (
	PartOrderOrdered    PartOrderStatus = "ORDERED"
	PartOrderInDelivery PartOrderStatus = "IN_DELIVERY"
	PartOrderDelivered  PartOrderStatus = "DELIVERED"
	PartOrderCancelled  PartOrderStatus = "CANCELLED"
)

// PartOrder pedido de repuestos al proveedor. RepairOrderID vacío = pedido de reposición sin orden.
type PartOrder struct {
	ID                string
	PartID            string
	Quantity          int
	Status            PartOrderStatus
	RepairOrderID     string
	OrderDate         time.Time
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOpen pedido aún pendiente de llegada.
func (p *PartOrder) IsOpen() bool {
	return p.Status == PartOrderOrdered || p.Status == PartOrderInDelivery
}

// IsSettled DELIVERED o CANCELLED.
func (p *PartOrder) IsSettled() bool { return !p.IsOpen() }

func (p *PartOrder) Clone() *PartOrder {
	if p == nil {
		return nil
	}
	c := *p
	if p.EstimatedDelivery != nil {
		t := *p.EstimatedDelivery
		c.EstimatedDelivery = &t
	}
	return &c
}
