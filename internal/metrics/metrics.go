package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported by the API, worker and consumer.
type Metrics struct {
	HTTPRequests          *prometheus.CounterVec
	HTTPDuration          *prometheus.HistogramVec
	StatusTransitions     *prometheus.CounterVec
	OutboxPublished       *prometheus.CounterVec
	StructuresDeactivated prometheus.Counter
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrms",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StatusTransitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms",
			Name:      "employee_status_transitions_total",
			Help:      "Employee status changes by previous and new status.",
		}, []string{"from", "to"}),
		OutboxPublished: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrms",
			Name:      "outbox_published_total",
			Help:      "Outbox events relayed to Kafka by result.",
		}, []string{"result"}),
		StructuresDeactivated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "hrms",
			Name:      "salary_structures_deactivated_total",
			Help:      "Salary structures deactivated after an employee left.",
		}),
	}

	m.OutboxPublished.WithLabelValues("success")
	m.OutboxPublished.WithLabelValues("failure")

	return m
}

// RecordTransition is nil-safe so callers can run without metrics.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil || from == to {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) RecordOutbox(sent, failed int) {
	if m == nil {
		return
	}
	m.OutboxPublished.WithLabelValues("success").Add(float64(sent))
	m.OutboxPublished.WithLabelValues("failure").Add(float64(failed))
}

func (m *Metrics) RecordDeactivated(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.StructuresDeactivated.Add(float64(n))
}

// Middleware records request count and latency keyed by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the collectors registered on g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
