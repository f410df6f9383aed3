package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleRequest cobro en la entrega.
type SettleRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type InvoiceResponse struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	ClientID       string          `json:"client_id"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	DocumentNumber string          `json:"document_number"`
	IssueDate      time.Time       `json:"issue_date"`
}
