package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SparePart repuesto en bodega. Quantity nunca es negativa.
type SparePart struct {
	ID          string
	Name        string
	Category    string
	Quantity    int
	MinQuantity int // umbral de stock bajo
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLow true si el stock está por debajo del mínimo.
func (p *SparePart) IsLow() bool {
	return p.Quantity < p.MinQuantity
}
