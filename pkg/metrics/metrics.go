// Package metrics provides the centralized Prometheus metrics registry.
// All metrics are defined in their respective packages (paginate,
// endpoint, pagecache) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the apikit packages.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Pagination Metrics (pkg/paginate):
//   - apikit_pagination_pages_fetched_total (Counter): Pages fetched from sources
//   - apikit_pagination_items_total (Counter): Items yielded by completed fetches
//   - apikit_pagination_fetch_errors_total (Counter): Fetches that ended a sequence with an error
//   - apikit_pagination_fetch_duration_seconds (Histogram): Page fetch duration
//
// Endpoint Metrics (pkg/endpoint):
//   - apikit_endpoint_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - apikit_endpoint_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - apikit_endpoint_decode_errors_total{endpoint} (Counter): Response decode failures
//
// Page Cache Metrics (pkg/pagecache):
//   - apikit_pagecache_hits_total (Counter): Pages served from cache
//   - apikit_pagecache_misses_total (Counter): Page cache misses
//   - apikit_pagecache_stores_total (Counter): Pages written to cache
//   - apikit_pagecache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(apikit_pagecache_hits_total[5m])) /
//   (sum(rate(apikit_pagecache_hits_total[5m])) + sum(rate(apikit_pagecache_misses_total[5m])))
//
//   # Fetch Error Rate
//   rate(apikit_pagination_fetch_errors_total[5m])
//
//   # P95 Page Fetch Latency
//   histogram_quantile(0.95, rate(apikit_pagination_fetch_duration_seconds_bucket[5m]))
//
//   # Items Throughput
//   rate(apikit_pagination_items_total[5m])
//
//   # Non-200 Response Rate by Endpoint
//   sum(rate(apikit_endpoint_requests_total{status!="200"}[5m])) by (endpoint)
