package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPath — путь, с которого Prometheus забирает метрики. Сам он не учитывается.
const MetricsPath = "/metrics"

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// PrometheusMetrics регистрирует HTTP-метрики в reg и возвращает мидлварь, которая их пишет:
// число запросов по методу, маршруту и статусу, длительность и запросы в обработке.
func PrometheusMetrics(reg prometheus.Registerer) gin.HandlerFunc {
	f := promauto.With(reg)
	m := &httpMetrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "calculator",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "calculator",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"method", "route"},
		),
		inFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "calculator",
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "HTTP requests being served right now.",
			},
		),
	}
	return m.handle
}

func (m *httpMetrics) handle(c *gin.Context) {
	if c.Request.URL.Path == MetricsPath {
		c.Next()
		return
	}

	m.inFlight.Inc()
	defer m.inFlight.Dec()
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}
