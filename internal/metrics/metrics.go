package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_hub_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "academic_hub_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AchievementsGranted counts new achievement grants by type.
	AchievementsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_hub_achievements_granted_total",
		Help: "Total number of achievements granted",
	}, []string{"type"})

	// DownloadsTotal counts logged downloads by resource type.
	DownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_hub_downloads_total",
		Help: "Total number of logged resource downloads",
	}, []string{"resource_type"})

	// UploadsTotal counts stored uploads by resource type.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_hub_uploads_total",
		Help: "Total number of stored resource uploads",
	}, []string{"resource_type"})

	// ChatRequestsTotal counts chat assistant calls by outcome.
	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_hub_chat_requests_total",
		Help: "Total number of chat assistant requests",
	}, []string{"outcome"})

	// CacheLookups counts stats cache lookups by result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academic_hub_cache_lookups_total",
		Help: "Total number of cache lookups",
	}, []string{"result"})
)

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
