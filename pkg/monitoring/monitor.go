package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	RoadmapGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_generated_total",
			Help: "Total number of roadmaps generated",
		},
	)

	TaskCompletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_task_completions_total",
			Help: "Total number of recorded task completions",
		},
	)

	CatalogMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_catalog_misses_total",
			Help: "Catalog lookups that fell back to a placeholder task",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RoadmapGenerated)
	prometheus.MustRegister(TaskCompletions)
	prometheus.MustRegister(CatalogMisses)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
