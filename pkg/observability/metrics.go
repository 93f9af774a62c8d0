package observability

import (
	"context"
	"strconv"
	"sync"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by reconciliation hooks.
type Metrics struct {
	Passes       *prometheus.CounterVec
	Repairs      *prometheus.CounterVec
	Visited      *prometheus.HistogramVec
	PassDuration *prometheus.HistogramVec

	mu     sync.Mutex
	starts map[int]domain.PassEvent
}

// NewMetrics creates the collectors and registers them on reg.
// A nil Registerer skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stencil_reconcile_passes_total",
				Help: "Total number of reconciliation passes",
			},
			[]string{"scope", "changed"},
		),
		Repairs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stencil_repairs_total",
				Help: "Total number of nodes repaired",
			},
			[]string{"element", "kind"},
		),
		Visited: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stencil_pass_visited_nodes",
				Help:    "Number of template nodes visited per pass",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"scope"},
		),
		PassDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stencil_pass_duration_seconds",
				Help:    "Duration of reconciliation passes",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"scope"},
		),
		starts: make(map[int]domain.PassEvent),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.Passes, m.Repairs, m.Visited, m.PassDuration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPassStart: func(_ context.Context, e *domain.PassEvent) {
			m.mu.Lock()
			m.starts[e.Pass] = *e
			m.mu.Unlock()
		},
		OnPassEnd: func(_ context.Context, e *domain.PassEvent) {
			scope := string(e.Scope)
			m.Passes.WithLabelValues(scope, strconv.FormatBool(e.Changed)).Inc()
			m.Visited.WithLabelValues(scope).Observe(float64(e.Visited))

			m.mu.Lock()
			start, ok := m.starts[e.Pass]
			delete(m.starts, e.Pass)
			m.mu.Unlock()
			if ok {
				m.PassDuration.WithLabelValues(scope).Observe(e.Timestamp.Sub(start.Timestamp).Seconds())
			}
		},
		OnRepair: func(_ context.Context, e *domain.RepairEvent) {
			m.Repairs.WithLabelValues(e.Element, e.Kind.String()).Inc()
		},
	}
}
