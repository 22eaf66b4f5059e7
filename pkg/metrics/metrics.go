// Package metrics exposes Prometheus counters for the three action entry
// points. A nil *Metrics is valid and records nothing, so the engine can
// run without a registry (one-shot CLI invocations).
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "roadm"

// Build/delete result label values.
const (
	ResultCreated  = "created"
	ResultDeleted  = "deleted"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics holds the action counters.
type Metrics struct {
	builds                *prometheus.CounterVec
	buildRejections       *prometheus.CounterVec
	deletes               *prometheus.CounterVec
	discoveries           prometheus.Counter
	interfacesProvisioned prometheus.Counter
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Connection build attempts by result.",
		}, []string{"result"}),
		buildRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_rejections_total",
			Help:      "Rejected connection builds by reason.",
		}, []string{"reason"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "Connection delete attempts by result.",
		}, []string{"result"}),
		discoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discoveries_total",
			Help:      "Completed topology discovery runs.",
		}),
		interfacesProvisioned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interfaces_provisioned_total",
			Help:      "Interfaces created by connection builds.",
		}),
	}
	reg.MustRegister(m.builds, m.buildRejections, m.deletes, m.discoveries, m.interfacesProvisioned)
	return m
}

// ObserveBuild counts a build attempt by result.
func (m *Metrics) ObserveBuild(result string) {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(result).Inc()
}

// ObserveBuildRejection counts a rejection by reason.
func (m *Metrics) ObserveBuildRejection(reason string) {
	if m == nil {
		return
	}
	m.buildRejections.WithLabelValues(reason).Inc()
}

// ObserveDelete counts a delete attempt by result.
func (m *Metrics) ObserveDelete(result string) {
	if m == nil {
		return
	}
	m.deletes.WithLabelValues(result).Inc()
}

// ObserveDiscovery counts a completed discovery run.
func (m *Metrics) ObserveDiscovery() {
	if m == nil {
		return
	}
	m.discoveries.Inc()
}

// ObserveInterfacesProvisioned counts interfaces created by a build.
func (m *Metrics) ObserveInterfacesProvisioned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.interfacesProvisioned.Add(float64(n))
}
