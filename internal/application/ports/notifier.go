package ports

import (
	"context"
	"time"
)

// OrderEvent cambio de estado de una orden, publicado después del commit.
type OrderEvent struct {
	OrderID string    `json:"order_id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	ActorID string    `json:"actor_id,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier publica eventos hacia fuera (Kafka, log). Un fallo no revierte la operación.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, ev OrderEvent) error
}

// PINSender entrega el PIN generado al cliente (SMS u otro canal externo).
type PINSender interface {
	SendPIN(ctx context.Context, phone, pin string) error
}
