// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "biadmin"

var (
	requests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Number of requests handled.",
	})

	errorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Number of requests that ended in an error.",
	})

	panics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "panics_total",
		Help:      "Number of recovered panics.",
	})

	bulkOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bulk_grant_items_total",
		Help:      "Bulk grant items by outcome.",
	}, []string{"outcome"})

	requestCount atomic.Int64

	goroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "goroutines",
		Help:      "Number of goroutines, sampled every 100 requests.",
	})
)

// AddRequests increments the request count by 1 and every 100 requests it
// samples the number of goroutines.
func AddRequests(ctx context.Context) {
	requests.Inc()

	if n := requestCount.Add(1); n%100 == 0 {
		goroutines.Set(float64(runtime.NumGoroutine()))
	}
}

// AddErrors increments the errors by 1.
func AddErrors(ctx context.Context) {
	errorsTotal.Inc()
}

// AddPanics increments the panics by 1.
func AddPanics(ctx context.Context) {
	panics.Inc()
}

// AddBulkOutcome adds n items of the named bulk outcome.
func AddBulkOutcome(ctx context.Context, outcome string, n int) {
	bulkOutcomes.WithLabelValues(outcome).Add(float64(n))
}
