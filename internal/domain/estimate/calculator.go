// Package estimate calcula los totales de un presupuesto con aritmética decimal.
package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// Totals partsCost + labourCost = totalCost.
type Totals struct {
	PartsCost  decimal.Decimal
	LabourCost decimal.Decimal
	TotalCost  decimal.Decimal
}

// Calculate suma cantidad × precio copiado para repuestos y el precio de cada acción.
// Con listas vacías devuelve ceros.
func Calculate(parts []entity.EstimatePartLine, actions []entity.EstimateActionLine) Totals {
	partsSum := decimal.Zero
	for _, l := range parts {
		partsSum = partsSum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	labour := decimal.Zero
	for _, a := range actions {
		labour = labour.Add(a.Price)
	}
	t := Totals{PartsCost: partsSum.Round(2), LabourCost: labour.Round(2)}
	t.TotalCost = t.PartsCost.Add(t.LabourCost)
	return t
}

// Apply escribe los totales en el presupuesto.
func Apply(e *entity.CostEstimate) {
	t := Calculate(e.Parts, e.Actions)
	e.PartsCost, e.LabourCost, e.TotalCost = t.PartsCost, t.LabourCost, t.TotalCost
}
