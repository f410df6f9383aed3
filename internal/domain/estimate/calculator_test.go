package estimate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate(t *testing.T) {
	parts := []entity.EstimatePartLine{
		{PartID: "a", Quantity: 2, UnitPrice: d("100.00")},
		{PartID: "b", Quantity: 1, UnitPrice: d("49.99")},
	}
	actions := []entity.EstimateActionLine{
		{ActionID: "x", Price: d("150.00")},
		{ActionID: "y", Price: d("0.01")},
	}

	got := Calculate(parts, actions)
	assert.True(t, got.PartsCost.Equal(d("249.99")), got.PartsCost.String())
	assert.True(t, got.LabourCost.Equal(d("150.01")), got.LabourCost.String())
	assert.True(t, got.TotalCost.Equal(got.PartsCost.Add(got.LabourCost)))
	assert.True(t, got.TotalCost.Equal(d("400.00")))
}

func TestCalculate_Empty(t *testing.T) {
	got := Calculate(nil, nil)
	assert.True(t, got.PartsCost.IsZero())
	assert.True(t, got.LabourCost.IsZero())
	assert.True(t, got.TotalCost.IsZero())

	onlyLabour := Calculate(nil, []entity.EstimateActionLine{{Price: d("80")}})
	assert.True(t, onlyLabour.TotalCost.Equal(d("80")))
	assert.True(t, onlyLabour.PartsCost.IsZero())
}

func TestApply(t *testing.T) {
	e := &entity.CostEstimate{
		Parts:   []entity.EstimatePartLine{{Quantity: 3, UnitPrice: d("10.10")}},
		Actions: []entity.EstimateActionLine{{Price: d("5")}},
	}
	Apply(e)
	assert.True(t, e.PartsCost.Equal(d("30.30")))
	assert.True(t, e.TotalCost.Equal(d("35.30")))
}
