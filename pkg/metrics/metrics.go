package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinevault_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinevault_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinevault_db_query_duration_seconds",
			Help:    "Database query latency distribution.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "table"},
	)

	licenseClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinevault_license_claims_total",
			Help: "License claim attempts by outcome.",
		},
		[]string{"result"},
	)

	catalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinevault_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by outcome.",
		},
		[]string{"result"},
	)

	licenseInventory = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinevault_licenses",
			Help: "Current license counts by status.",
		},
		[]string{"status"},
	)
)

// Middleware collects request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Use the route template so cardinality stays bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordDBQuery records a database query observation from the GORM logger.
func RecordDBQuery(operation, table string, elapsed time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(elapsed.Seconds())
}

// RecordLicenseClaim counts a claim attempt outcome
// (success, not_found, already_claimed, invalid_input, permission_denied, transient, error).
func RecordLicenseClaim(result string) {
	licenseClaimsTotal.WithLabelValues(result).Inc()
}

// SetLicenseInventory updates the per-status license gauges.
func SetLicenseInventory(available, claimed int64) {
	licenseInventory.WithLabelValues("available").Set(float64(available))
	licenseInventory.WithLabelValues("claimed").Set(float64(claimed))
}

// RecordCatalogCacheLookup counts a catalog cache hit or miss.
func RecordCatalogCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	catalogCacheLookups.WithLabelValues(result).Inc()
}
