package paginate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for iterator page fetches.
var (
	pagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apikit_pagination_pages_fetched_total",
		Help: "Total pages fetched successfully by paginated iterators",
	})

	itemsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apikit_pagination_items_total",
		Help: "Total items returned by page fetches",
	})

	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apikit_pagination_fetch_errors_total",
		Help: "Total page fetches that ended a sequence with an error",
	})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "apikit_pagination_fetch_duration_seconds",
		Help:    "Page fetch duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})
)
