package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns its own registry so several instances can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	authAttemptsTotal   *prometheus.CounterVec
	chatBookingsTotal   *prometheus.CounterVec
	chatDraftsActive    prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartcare_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartcare_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		authAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartcare_auth_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"role", "status"},
		),
		chatBookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartcare_chat_bookings_total",
				Help: "Appointments completed through the chat assistant",
			},
			[]string{"status"},
		),
		chatDraftsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smartcare_chat_drafts_active",
			Help: "Chat booking drafts held in memory after the last sweep",
		}),
	}
	c.registry.MustRegister(
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.authAttemptsTotal,
		c.chatBookingsTotal,
		c.chatDraftsActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (c *Collector) RecordAuthAttempt(role string, success bool) {
	c.authAttemptsTotal.WithLabelValues(role, outcome(success)).Inc()
}

func (c *Collector) RecordChatBooking(success bool) {
	c.chatBookingsTotal.WithLabelValues(outcome(success)).Inc()
}

func (c *Collector) SetChatDrafts(n int) {
	c.chatDraftsActive.Set(float64(n))
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GinMiddleware labels requests by route pattern, not raw path, to keep the
// label set bounded.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		endpoint := ctx.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		c.RecordHTTPRequest(ctx.Request.Method, endpoint, ctx.Writer.Status(), time.Since(start))
	}
}
