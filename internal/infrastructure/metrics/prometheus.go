// Package metrics expone los contadores del libro en formato Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
)

var _ ports.LedgerMetrics = (*LedgerMetrics)(nil)

// LedgerMetrics implementa ports.LedgerMetrics sobre un registro propio.
type LedgerMetrics struct {
	registry   *prometheus.Registry
	movements  *prometheus.CounterVec
	quantities *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

// NewLedgerMetrics crea y registra los contadores junto con los colectores de proceso y runtime.
func NewLedgerMetrics() *LedgerMetrics {
	reg := prometheus.NewRegistry()
	m := &LedgerMetrics{
		registry: reg,
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_ledger",
			Name:      "movements_total",
			Help:      "Movimientos registrados por dirección.",
		}, []string{"direction"}),
		quantities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_ledger",
			Name:      "movement_quantity_total",
			Help:      "Unidades movidas por dirección.",
		}, []string{"direction"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock_ledger",
			Name:      "rejections_total",
			Help:      "Mutaciones rechazadas por motivo.",
		}, []string{"reason"}),
	}
	reg.MustRegister(
		m.movements, m.quantities, m.rejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *LedgerMetrics) MovementRecorded(direction string, qty int) {
	m.movements.WithLabelValues(direction).Inc()
	m.quantities.WithLabelValues(direction).Add(float64(qty))
}

func (m *LedgerMetrics) MovementRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

// Registry devuelve el registro subyacente (tests y colectores adicionales).
func (m *LedgerMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone el registro para GET /metrics.
func (m *LedgerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
