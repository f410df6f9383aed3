package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimatePartLine línea de repuesto con el precio copiado al momento de crear el presupuesto.
type EstimatePartLine struct {
	PartID    string          `json:"part_id"`
	PartName  string          `json:"part_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Consumed  int             `json:"consumed"`
}

// Remaining unidades aún no retiradas de bodega.
func (l EstimatePartLine) Remaining() int {
	if r := l.Quantity - l.Consumed; r > 0 {
		return r
	}
	return 0
}

// EstimateActionLine línea de mano de obra con precio copiado.
type EstimateActionLine struct {
	ActionID string          `json:"action_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
}

// CostEstimate presupuesto de una orden. Approved: nil pendiente, true aprobado, false rechazado.
type CostEstimate struct {
	ID         string
	OrderID    string
	Parts      []EstimatePartLine
	Actions    []EstimateActionLine
	PartsCost  decimal.Decimal
	LabourCost decimal.Decimal
	TotalCost  decimal.Decimal
	Approved   *bool
	CreatedBy  string
	CreatedAt  time.Time
	DecidedAt  *time.Time
}

func (e *CostEstimate) IsPending() bool { return e.Approved == nil }

func (e *CostEstimate) IsApproved() bool { return e.Approved != nil && *e.Approved }

// Clone copia profunda; los adaptadores nunca comparten slices ni punteros con el llamador.
func (e *CostEstimate) Clone() *CostEstimate {
	if e == nil {
		return nil
	}
	c := *e
	c.Parts = append([]EstimatePartLine(nil), e.Parts...)
	c.Actions = append([]EstimateActionLine(nil), e.Actions...)
	if e.Approved != nil {
		v := *e.Approved
		c.Approved = &v
	}
	if e.DecidedAt != nil {
		t := *e.DecidedAt
		c.DecidedAt = &t
	}
	return &c
}
