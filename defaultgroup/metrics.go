package defaultgroup

import (
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

const (
	outcomeMatched   = "matched"
	outcomeFallback  = "fallback"
	outcomeUnmatched = "unmatched"
)

type metrics struct {
	resolutions  *prometheus.CounterVec
	invocations  *prometheus.CounterVec
	invokeErrors *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// RegisterMetrics registers resolution and invocation metrics with Prometheus.
//
// This should be called once during initialization.
// Returns the group for method chaining.
func (g *Group) RegisterMetrics(registry prometheus.Registerer) *Group {
	m := &metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "defaultcmd",
			Name:      "resolutions_total",
			Help:      "Command resolutions by outcome (matched, fallback, unmatched)",
		}, []string{"outcome"}),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "defaultcmd",
			Name:      "invocations_total",
			Help:      "Command invocations by command name",
		}, []string{"command"}),
		invokeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "defaultcmd",
			Name:      "invocation_errors_total",
			Help:      "Command invocations that returned an error, by command name",
		}, []string{"command"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "defaultcmd",
			Name:      "invocation_duration_seconds",
			Help:      "Time spent running commands, by command name",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}

	registry.MustRegister(
		m.resolutions,
		m.invocations,
		m.invokeErrors,
		m.duration,
	)
	g.metrics = m
	return g
}

func (m *metrics) resolved(outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
}

// invoking starts timing an invocation of command.
// The returned function records the result.
func (m *metrics) invoking(command string) func(err error) {
	if m == nil {
		return func(error) {}
	}
	start := time.Now()
	m.invocations.WithLabelValues(command).Inc()
	return func(err error) {
		m.duration.WithLabelValues(command).Observe(time.Since(start).Seconds())
		if err != nil {
			m.invokeErrors.WithLabelValues(command).Inc()
		}
	}
}
