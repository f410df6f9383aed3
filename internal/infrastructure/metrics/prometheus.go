// Package metrics contadores Prometheus del taller.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

type Prometheus struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	withdrawn   prometheus.Counter
	received    prometheus.Counter
	delivered   prometheus.Counter
	promotions  prometheus.Counter
}

// New registra los contadores en un registro propio (varias instancias en tests no chocan).
func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "repair_order_transitions_total",
			Help: "Transiciones de estado de órdenes de reparación.",
		}, []string{"from", "to"}),
		withdrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spare_parts_withdrawn_total",
			Help: "Unidades de repuestos retiradas de bodega.",
		}),
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "spare_parts_received_total",
			Help: "Unidades de repuestos recibidas.",
		}),
		delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "part_orders_delivered_total",
			Help: "Pedidos de repuestos marcados como entregados.",
		}),
		promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "repair_orders_unblocked_total",
			Help: "Órdenes que salieron de WAITING_FOR_PARTS al completarse sus pedidos.",
		}),
	}
	p.registry.MustRegister(
		p.transitions, p.withdrawn, p.received, p.delivered, p.promotions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) ObserveTransition(from, to string) {
	p.transitions.WithLabelValues(from, to).Inc()
}
func (p *Prometheus) ObserveWithdrawal(qty int)  { p.withdrawn.Add(float64(qty)) }
func (p *Prometheus) ObserveReceipt(qty int)     { p.received.Add(float64(qty)) }
func (p *Prometheus) ObservePartOrderDelivered() { p.delivered.Inc() }
func (p *Prometheus) ObservePromotion()          { p.promotions.Inc() }

// Handler expone el registro en formato texto de Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry para tests.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }
