// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripsplit"

// Metrics groups every collector. A nil *Metrics is valid and records nothing,
// which keeps services usable without a registry (CLI, tests).
type Metrics struct {
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec
	Expenses    prometheus.Counter
	Members     prometheus.Counter
	PlanSize    prometheus.Histogram
	Unbalanced  prometheus.Counter
	registry    *prometheus.Registry
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Expenses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_recorded_total",
			Help:      "Expenses appended to the history.",
		}),
		Members: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "members_registered_total",
			Help:      "Members registered.",
		}),
		PlanSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers in each computed settlement plan.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		Unbalanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unbalanced_ledgers_total",
			Help:      "Summaries computed from balances that did not sum to zero.",
		}),
		registry: reg,
	}

	reg.MustRegister(
		m.RPCRequests, m.RPCDuration, m.Expenses, m.Members, m.PlanSize, m.Unbalanced,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}

// ExpenseRecorded counts one appended expense.
func (m *Metrics) ExpenseRecorded() {
	if m == nil {
		return
	}
	m.Expenses.Inc()
}

// MemberRegistered counts one registered member.
func (m *Metrics) MemberRegistered() {
	if m == nil {
		return
	}
	m.Members.Inc()
}

// PlanComputed records the size of a settlement plan.
func (m *Metrics) PlanComputed(transfers int, balanced bool) {
	if m == nil {
		return
	}
	m.PlanSize.Observe(float64(transfers))
	if !balanced {
		m.Unbalanced.Inc()
	}
}
