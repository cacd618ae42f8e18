package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// =============================================================================
// METRICS - Prometheus collectors for the HTTP surface
// =============================================================================

// Metrics holds the API collectors and the registry they are exposed from.
type Metrics struct {
	registry *prometheus.Registry

	Requests       *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	EngineErrors   *prometheus.CounterVec
	ProfilesSaved  prometheus.Counter

	// InvalidProfiles is set by the profile auditor.
	InvalidProfiles prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry, so several
// routers can coexist in one process (tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "region_engine_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "code"}),
		RequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "region_engine_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		EngineErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "region_engine_errors_total",
			Help: "Failed API operations by error kind",
		}, []string{"kind"}),
		ProfilesSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "region_engine_profiles_created_total",
			Help: "Profiles created through the API",
		}),
		InvalidProfiles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "region_engine_invalid_profiles",
			Help: "Stored profiles whose region no longer resolves, as of the last audit",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.RequestSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
