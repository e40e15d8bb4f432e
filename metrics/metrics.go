// Package metrics defines the Prometheus collectors exposed on /metrics.
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

const namespace = "agency"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ReviewActions counts review lifecycle transitions by action
	ReviewActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "review_actions_total",
			Help:      "Review lifecycle actions (submitted, created, approved, rejected, updated, deleted)",
		},
		[]string{"action"},
	)

	// InquiriesReceived counts contact-form submissions
	InquiriesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inquiries_received_total",
			Help:      "Contact-form inquiries received",
		},
	)

	// ImageUploads counts CDN uploads by result (success, failure)
	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_uploads_total",
			Help:      "Image uploads to the CDN by result",
		},
		[]string{"result"},
	)

	// TestimonialFallbacks counts home page loads served from the fallback set
	TestimonialFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "testimonial_fallbacks_total",
			Help:      "Testimonial loads that fell back to the built-in set",
		},
	)
)

// RecordUpload counts one upload outcome
func RecordUpload(err error) {
	if err != nil {
		ImageUploads.WithLabelValues("failure").Inc()
		return
	}
	ImageUploads.WithLabelValues("success").Inc()
}

// GinMiddleware records request count and latency per route pattern
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
