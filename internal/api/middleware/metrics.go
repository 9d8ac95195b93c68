package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector records request counts and latencies per route pattern.
type MetricsCollector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsCollector registers its collectors with reg.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rks_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rks_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(mc.requests, mc.duration)
	return mc
}

// Middleware returns middleware that counts requests and observes latency.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		// Route pattern keeps label cardinality bounded (no raw node ids).
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		mc.requests.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		mc.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
