package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	calculations *prometheus.CounterVec
	aiRequests   *prometheus.CounterVec
	aiLatency    prometheus.Histogram
	messages     *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistente",
			Name:      "calculations_total",
			Help:      "Financial calculations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistente",
			Name:      "ai_requests_total",
			Help:      "Language model requests by outcome.",
		}, []string{"outcome"}),
		aiLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assistente",
			Name:      "ai_request_duration_seconds",
			Help:      "Language model request latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistente",
			Name:      "whatsapp_messages_total",
			Help:      "WhatsApp messages by direction and outcome.",
		}, []string{"direction", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistente",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by namespace and result.",
		}, []string{"namespace", "result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.calculations,
		m.aiRequests,
		m.aiLatency,
		m.messages,
		m.cacheLookups,
	)
	return m
}

func (m *Metrics) ObserveCalculation(kind string, err error) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(kind, outcome(err)).Inc()
}

func (m *Metrics) ObserveAI(started time.Time, err error) {
	if m == nil {
		return
	}
	m.aiRequests.WithLabelValues(outcome(err)).Inc()
	m.aiLatency.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveMessage(direction string, err error) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(direction, outcome(err)).Inc()
}

func (m *Metrics) ObserveCache(namespace string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(namespace, result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
