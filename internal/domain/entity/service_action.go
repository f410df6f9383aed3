package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceAction trabajo de mano de obra del catálogo (cambio de pantalla, limpieza, ...).
type ServiceAction struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
