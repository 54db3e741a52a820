// Package metrics counts client-side request and session events.
// Counters live in a private registry and can be dumped in the prometheus
// textfile format on exit.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "simply_client"

// Refresh outcomes.
const (
	RefreshSucceeded = "succeeded"
	RefreshRejected  = "rejected"
	RefreshNoToken   = "no_token"
	RefreshStoreFail = "store_failed"
	RefreshDiscarded = "discarded"
)

// Metrics groups the client counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	refreshes     *prometheus.CounterVec
	forcedLogouts prometheus.Counter
	replays       prometheus.Counter
}

// New creates the counters in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Outbound API requests by method and response code (0 for transport errors).",
		}, []string{"method", "code"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "Refresh exchanges by outcome.",
		}, []string{"outcome"}),
		forcedLogouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forced_logouts_total",
			Help:      "Session teardowns caused by unrecoverable authorization failures.",
		}),
		replays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_replays_total",
			Help:      "Requests replayed after a 401.",
		}),
	}

	m.registry.MustRegister(m.requests, m.refreshes, m.forcedLogouts, m.replays)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest counts one completed request. code 0 means no response.
func (m *Metrics) ObserveRequest(method string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}

// ObserveRefresh counts one refresh attempt.
func (m *Metrics) ObserveRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}

// ObserveForcedLogout counts one forced logout.
func (m *Metrics) ObserveForcedLogout() {
	if m == nil {
		return
	}
	m.forcedLogouts.Inc()
}

// ObserveReplay counts one replayed request.
func (m *Metrics) ObserveReplay() {
	if m == nil {
		return
	}
	m.replays.Inc()
}

// Refreshes exposes the refresh counter, labelled by outcome.
func (m *Metrics) Refreshes() *prometheus.CounterVec {
	return m.refreshes
}

// ForcedLogouts exposes the forced logout counter.
func (m *Metrics) ForcedLogouts() prometheus.Counter {
	return m.forcedLogouts
}

// WriteTextfile writes all counters to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
