// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapview",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mapview",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	// SharedLinks counts share links resolved by the measure API, by outcome.
	SharedLinks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapview",
		Subsystem: "share",
		Name:      "links_total",
		Help:      "Share links decoded by the measure API",
	}, []string{"map", "result"})

	// MapsAvailable is the number of maps served after validation.
	MapsAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapview",
		Subsystem: "catalog",
		Name:      "maps_available",
		Help:      "Maps with an image on disk",
	})

	// MapsInvalid is the number of maps whose file name carries no bounds.
	MapsInvalid = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapview",
		Subsystem: "catalog",
		Name:      "maps_invalid",
		Help:      "Maps listed with an invalid map format",
	})
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
