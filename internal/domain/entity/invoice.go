package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocumentIssued    DocumentStatus = "ISSUED"
	DocumentPaid      DocumentStatus = "PAID"
	DocumentCancelled DocumentStatus = "CANCELLED"
)

// Invoice documento de venta; exactamente uno por orden.
type Invoice struct {
	ID             string
	OrderID        string
	ClientID       string
	Amount         decimal.Decimal
	PaymentMethod  PaymentMethod
	Status         DocumentStatus
	DocumentNumber string // FV-2026-000001
	IssueDate      time.Time
	CreatedBy      string
}
