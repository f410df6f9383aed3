package ports

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/domain/lifecycle"
)

// Publisher reparte las transiciones confirmadas a métricas y notificador.
// Los errores del notificador se registran, no se devuelven.
type Publisher struct {
	notifier Notifier
	metrics  Metrics
	log      zerolog.Logger
}

func NewPublisher(n Notifier, m Metrics, log zerolog.Logger) *Publisher {
	if m == nil {
		m = NopMetrics{}
	}
	return &Publisher{notifier: n, metrics: m, log: log}
}

// Metrics acceso a los contadores para eventos que no son transiciones.
func (p *Publisher) Metrics() Metrics { return p.metrics }

// Publish solo debe llamarse después de un commit exitoso.
func (p *Publisher) Publish(ctx context.Context, actorID string, changes []lifecycle.Change) {
	for _, ch := range changes {
		p.metrics.ObserveTransition(string(ch.From), string(ch.To))
		p.log.Info().
			Str("order_id", ch.OrderID).
			Str("from", string(ch.From)).
			Str("to", string(ch.To)).
			Str("actor_id", actorID).
			Msg("transición de orden")
		if p.notifier == nil {
			continue
		}
		ev := OrderEvent{OrderID: ch.OrderID, From: string(ch.From), To: string(ch.To), ActorID: actorID, At: ch.At}
		if err := p.notifier.NotifyStatusChange(ctx, ev); err != nil {
			p.log.Error().Err(err).Str("order_id", ch.OrderID).Msg("no se pudo publicar el evento")
		}
	}
}
