package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the rate monitor
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btc_rate_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "btc_rate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Cache Metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btc_rate_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"}, // operation: get/set, result: hit/miss/success/error
	)

	StoreConnectAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btc_rate_store_connect_attempts_total",
			Help: "Cache store connection attempts",
		},
		[]string{"result"}, // result: success/error
	)

	// External API Metrics
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btc_rate_external_api_requests_total",
			Help: "Total number of external API requests",
		},
		[]string{"service", "endpoint", "status_code"},
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "btc_rate_external_api_request_duration_seconds",
			Help:    "External API request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"service", "endpoint"},
	)

	// Monitor Metrics
	MonitorTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btc_rate_monitor_ticks_total",
			Help: "Movement monitor evaluations by outcome",
		},
		[]string{"outcome"}, // outcome: fetch_error/baseline_error/quiet/notified
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btc_rate_notifications_total",
			Help: "Notifications sent to recipients",
		},
		[]string{"result"}, // result: success/error
	)

	CurrentRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "btc_rate_current_rate",
			Help: "Last observed live BTC/USD rate",
		},
	)

	LastMovementPercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "btc_rate_last_movement_percent",
			Help: "Percentage change computed on the last successful evaluation",
		},
	)

	AlertSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "btc_rate_alert_feed_subscribers",
			Help: "Connected live alert feed clients",
		},
	)

	RateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btc_rate_rate_limit_decisions_total",
			Help: "Price endpoint requests allowed or rejected by the rate limiter",
		},
		[]string{"result"}, // result: allowed/rejected
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "btc_rate_application_info",
			Help: "Application information",
		},
		[]string{"version", "cache_backend"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordCacheOperation records cache operation metrics
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordStoreConnectAttempt records one dial+ping attempt against the cache store
func RecordStoreConnectAttempt(success bool) {
	result := "error"
	if success {
		result = "success"
	}
	StoreConnectAttempts.WithLabelValues(result).Inc()
}

// RecordExternalAPICall records external API call metrics; statusCode 0 means no response
func RecordExternalAPICall(service, endpoint string, statusCode int, duration float64) {
	ExternalAPIRequestsTotal.WithLabelValues(service, endpoint, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service, endpoint).Observe(duration)
}

// RecordMonitorTick records the outcome of one monitor evaluation
func RecordMonitorTick(outcome string) {
	MonitorTicksTotal.WithLabelValues(outcome).Inc()
}

// RecordNotification records a single recipient send
func RecordNotification(success bool) {
	result := "error"
	if success {
		result = "success"
	}
	NotificationsTotal.WithLabelValues(result).Inc()
}

// UpdateCurrentRate updates the live rate gauge
func UpdateCurrentRate(rate float64) {
	CurrentRate.Set(rate)
}

// UpdateLastMovement updates the movement gauge
func UpdateLastMovement(percent float64) {
	LastMovementPercent.Set(percent)
}

// UpdateAlertSubscribers sets the number of connected feed clients
func UpdateAlertSubscribers(count int) {
	AlertSubscribers.Set(float64(count))
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, cacheBackend string) {
	ApplicationInfo.WithLabelValues(version, cacheBackend).Set(1)
}

// RecordRateLimitResult records one rate limiter decision
func RecordRateLimitResult(allowed bool) {
	result := "rejected"
	if allowed {
		result = "allowed"
	}
	RateLimitDecisions.WithLabelValues(result).Inc()
}
