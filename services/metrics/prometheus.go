package metricsvc

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
)

const namespace = "speakceo"

// PrometheusRecorder exposes the store counters and the HTTP latencies to prometheus.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	repairs         *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	requests        *prometheus.HistogramVec
}

var _ core.Recorder = (*PrometheusRecorder)(nil)

func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Store operations by tool, operation and outcome.",
		}, []string{"tool", "op", "outcome"}),
		repairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rehydration_repairs_total",
			Help:      "Persisted records dropped or snapped while loading a document.",
		}, []string{"tool", "action"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Document writes that failed.",
		}, []string{"tool"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	r.registry.MustRegister(
		r.mutations,
		r.repairs,
		r.persistFailures,
		r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *PrometheusRecorder) ObserveMutation(tool, op, outcome string) {
	r.mutations.WithLabelValues(tool, op, outcome).Inc()
}

func (r *PrometheusRecorder) ObserveRepair(tool string, dropped, snapped int) {
	if dropped > 0 {
		r.repairs.WithLabelValues(tool, "dropped").Add(float64(dropped))
	}
	if snapped > 0 {
		r.repairs.WithLabelValues(tool, "snapped").Add(float64(snapped))
	}
}

func (r *PrometheusRecorder) ObservePersistFailure(tool string) {
	r.persistFailures.WithLabelValues(tool).Inc()
}

// ObserveRequest records the latency of a served HTTP request.
func (r *PrometheusRecorder) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// ObserveOpenWorkspaces exports count as the number of workspaces held in memory.
func (r *PrometheusRecorder) ObserveOpenWorkspaces(count func() int) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "open_workspaces",
		Help:      "Learner workspaces currently cached in memory.",
	}, func() float64 { return float64(count()) }))
}

// Handler serves the registry in the prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
