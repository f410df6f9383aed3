// Package kafka publica los cambios de estado de órdenes en un tópico.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier envía cada OrderEvent como JSON; la clave es el id de la orden para mantener el orden por partición.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

func NewNotifier(brokers []string, topic string, log zerolog.Logger) (*Notifier, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Timeout = 5 * time.Second
	prod, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewNotifierWithProducer(prod, topic, log), nil
}

// NewNotifierWithProducer permite inyectar un productor (tests con sarama/mocks).
func NewNotifierWithProducer(p sarama.SyncProducer, topic string, log zerolog.Logger) *Notifier {
	return &Notifier{producer: p, topic: topic, log: log}
}

func (n *Notifier) NotifyStatusChange(ctx context.Context, ev ports.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(ev.OrderID),
		Value: sarama.ByteEncoder(body),
	}
	partition, offset, err := n.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka send: %w", err)
	}
	n.log.Debug().
		Str("topic", n.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("order_id", ev.OrderID).
		Msg("evento publicado")
	return nil
}

func (n *Notifier) Close() error {
	return n.producer.Close()
}
