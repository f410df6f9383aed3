package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type EstimatePartInput struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

// CreateEstimateRequest repuestos y acciones del presupuesto; los precios se toman del catálogo.
type CreateEstimateRequest struct {
	Parts     []EstimatePartInput `json:"parts"`
	ActionIDs []string            `json:"action_ids"`
}

type DecideEstimateRequest struct {
	Approved *bool `json:"approved"`
}

type EstimatePartLineResponse struct {
	PartID    string          `json:"part_id"`
	PartName  string          `json:"part_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"string"`
	Consumed  int             `json:"consumed"`
}

type EstimateActionLineResponse struct {
	ActionID string          `json:"action_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
}

type CostEstimateResponse struct {
	ID         string                       `json:"id"`
	OrderID    string                       `json:"order_id"`
	Parts      []EstimatePartLineResponse   `json:"parts"`
	Actions    []EstimateActionLineResponse `json:"actions"`
	PartsCost  decimal.Decimal              `json:"parts_cost" swaggertype:"string"`
	LabourCost decimal.Decimal              `json:"labour_cost" swaggertype:"string"`
	TotalCost  decimal.Decimal              `json:"total_cost" swaggertype:"string"`
	Approved   *bool                        `json:"approved"`
	CreatedAt  time.Time                    `json:"created_at"`
	DecidedAt  *time.Time                   `json:"decided_at,omitempty"`
}

// DecisionResponse presupuesto decidido y el estado al que pasó la orden.
type DecisionResponse struct {
	Estimate   CostEstimateResponse `json:"estimate"`
	Order      RepairOrderResponse  `json:"order"`
	Backorders []PartOrderResponse  `json:"backorders,omitempty"`
}
