// Package notify implementaciones de notificación que solo escriben en el log.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
)

var (
	_ ports.Notifier  = (*LogNotifier)(nil)
	_ ports.PINSender = (*LogPINSender)(nil)
)

// LogNotifier se usa cuando KAFKA_BROKERS está vacío.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyStatusChange(_ context.Context, ev ports.OrderEvent) error {
	n.log.Info().
		Str("order_id", ev.OrderID).
		Str("from", ev.From).
		Str("to", ev.To).
		Time("at", ev.At).
		Msg("notificación de estado")
	return nil
}

// LogPINSender deja el PIN en el log en desarrollo; en otros entornos solo los últimos dígitos del teléfono.
type LogPINSender struct {
	log     zerolog.Logger
	showPIN bool
}

func NewLogPINSender(log zerolog.Logger, showPIN bool) *LogPINSender {
	return &LogPINSender{log: log, showPIN: showPIN}
}

func (s *LogPINSender) SendPIN(_ context.Context, phone, pin string) error {
	ev := s.log.Info().Str("phone", maskPhone(phone))
	if s.showPIN {
		ev = ev.Str("pin", pin)
	}
	ev.Msg("PIN de cliente generado")
	return nil
}

func maskPhone(p string) string {
	if len(p) <= 4 {
		return p
	}
	return "****" + p[len(p)-4:]
}
