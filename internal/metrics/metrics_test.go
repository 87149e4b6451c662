package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/employees/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees/42", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/employees/:id", "204")))
}

func TestRecordTransition(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordTransition("ACTIVE", "RESIGNED")
	m.RecordTransition("ACTIVE", "ACTIVE")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("ACTIVE", "RESIGNED")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues("ACTIVE", "ACTIVE")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordTransition("ACTIVE", "TERMINATED") })
}

func TestHandler_ExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordOutbox(2, 1)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hrms_outbox_published_total{result="success"} 2`)
}
