// Package metrics exposes solver and HTTP instrumentation on a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/tspcompare/engine"
	"github.com/katalvlaran/tspcompare/tsp"
)

// Solver run statuses used as the status label.
const (
	StatusComputed = "computed"
	StatusSkipped  = "skipped"
	StatusError    = "error"
)

// Metrics owns the registry and the predefined collectors. It implements
// engine.Observer.
type Metrics struct {
	registry *prometheus.Registry

	SolverDuration *prometheus.HistogramVec
	SolverRuns     *prometheus.CounterVec
	ShortestMethod *prometheus.CounterVec
	RunCities      prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var _ engine.Observer = (*Metrics)(nil)

// New builds a registry with Go runtime and process collectors plus the
// solver and HTTP metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.SolverDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tsp_solver_duration_seconds",
		Help:    "Wall time of a single solver run",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"method"})

	m.SolverRuns = m.NewCounterVec(prometheus.CounterOpts{
		Name: "tsp_solver_runs_total",
		Help: "Solver runs by outcome",
	}, []string{"method", "status"})

	m.ShortestMethod = m.NewCounterVec(prometheus.CounterOpts{
		Name: "tsp_shortest_method_total",
		Help: "Comparisons won per method",
	}, []string{"method"})

	m.RunCities = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tsp_run_cities",
		Help:    "Number of cities per comparison",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	reg.MustRegister(m.RunCities)

	m.HTTPRequestsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	return m
}

// NewCounterVec creates and registers a counter vector.
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewHistogramVec creates and registers a histogram vector.
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSolver records one solver run.
func (m *Metrics) ObserveSolver(method tsp.Method, d time.Duration, computed bool, err error) {
	status := StatusComputed
	switch {
	case err != nil:
		status = StatusError
	case !computed:
		status = StatusSkipped
	}
	m.SolverRuns.WithLabelValues(string(method), status).Inc()
	m.SolverDuration.WithLabelValues(string(method)).Observe(d.Seconds())
}

// ObserveRun records a finished comparison.
func (m *Metrics) ObserveRun(r *engine.Report) {
	m.ShortestMethod.WithLabelValues(string(r.Shortest.Method)).Inc()
	m.RunCities.Observe(float64(len(r.Cities)))
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
