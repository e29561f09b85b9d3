package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts store operations and optimistic reverts. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ops     *prometheus.CounterVec
	reverts *prometheus.CounterVec
}

// NewMetrics registers the store counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sprintsync",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by store, operation and result.",
		}, []string{"store", "op", "result"}),
		reverts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sprintsync",
			Subsystem: "store",
			Name:      "reverts_total",
			Help:      "Optimistic reverts, applied or skipped as stale.",
		}, []string{"store", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.reverts)
	}
	return m
}

func (m *Metrics) observe(store, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ops.WithLabelValues(store, op, result).Inc()
}

func (m *Metrics) revert(store string, o outcome) {
	if m == nil {
		return
	}
	switch o {
	case outcomeReverted:
		m.reverts.WithLabelValues(store, "applied").Inc()
	case outcomeStale:
		m.reverts.WithLabelValues(store, "stale").Inc()
	}
}
