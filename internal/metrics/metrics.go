// Package metrics holds the Prometheus collectors shared across packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation results
const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultNoop      = "noop"
	ResultCancelled = "cancelled"
	ResultInvalid   = "invalid"
)

var (
	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelpanel_store_operations_total",
		Help: "Reel store operations by operation and result",
	}, []string{"operation", "result"})

	storeReels = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "reelpanel_reels",
		Help: "Reels currently held in memory, by status",
	}, []string{"status"})

	storeReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelpanel_reloads_total",
		Help: "Collection reloads from the persistence adapter",
	}, []string{"result"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reelpanel_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reelpanel_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})
)

// RecordOperation counts one store operation.
func RecordOperation(operation, result string) {
	storeOperations.WithLabelValues(operation, result).Inc()
}

// RecordReload counts one reload attempt.
func RecordReload(err error) {
	if err != nil {
		storeReloads.WithLabelValues(ResultError).Inc()
		return
	}
	storeReloads.WithLabelValues(ResultOK).Inc()
}

// SetCollection publishes the current counters.
func SetCollection(active, inactive int) {
	storeReels.WithLabelValues("active").Set(float64(active))
	storeReels.WithLabelValues("inactive").Set(float64(inactive))
}

// TrackInFlight marks one request as in flight until the returned func runs.
func TrackInFlight() func() {
	httpInFlight.Inc()
	return httpInFlight.Dec
}

// ObserveHTTP records one served request. path must be a route pattern.
func ObserveHTTP(method, path, status string, d time.Duration) {
	httpDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}
