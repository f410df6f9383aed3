package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
)

func TestNotifyStatusChange_SendsJSONKeyedByOrder(t *testing.T) {
	prod := mocks.NewSyncProducer(t, nil)
	ev := ports.OrderEvent{OrderID: "o-1", From: "NEW", To: "WAITING_FOR_TECHNICIAN", ActorID: "m-1", At: time.Now().UTC()}

	prod.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "o-1", string(key))
		assert.Equal(t, "orders.status", msg.Topic)

		body, err := msg.Value.Encode()
		require.NoError(t, err)
		var got ports.OrderEvent
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, ev.To, got.To)
		return nil
	})

	n := NewNotifierWithProducer(prod, "orders.status", zerolog.Nop())
	require.NoError(t, n.NotifyStatusChange(context.Background(), ev))
	require.NoError(t, n.Close())
}

func TestNotifyStatusChange_ProducerError(t *testing.T) {
	prod := mocks.NewSyncProducer(t, nil)
	prod.ExpectSendMessageAndFail(errors.New("broker caído"))

	n := NewNotifierWithProducer(prod, "orders.status", zerolog.Nop())
	err := n.NotifyStatusChange(context.Background(), ports.OrderEvent{OrderID: "o-1"})
	assert.Error(t, err)
	_ = n.Close()
}
