// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gomuse"

var (
	// CacheOperationsTotal tracks response-cache operations.
	// Labels:
	//   - operation: get, set, invalidate
	//   - status: hit, miss, success, error
	//   - cache_type: memory, redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of response cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// APIFetchesTotal tracks upstream music API fetches by data category.
	// Only cache misses reach the network, so this is effectively the miss
	// cost per category.
	APIFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_fetches_total",
			Help:      "Total number of upstream music API fetches",
		},
		[]string{"category", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// PlayerNavigationsTotal tracks playback surface navigations.
	// Labels:
	//   - result: issued, skipped (same video), invalid (bad identifier)
	PlayerNavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_navigations_total",
			Help:      "Total number of playback surface navigation decisions",
		},
		[]string{"result"},
	)

	// PlayerReparentsTotal counts surface attachments to a new host container.
	PlayerReparentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_reparents_total",
			Help:      "Total number of playback surface re-parenting operations",
		},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet        = "get"
	CacheOpSet        = "set"
	CacheOpInvalidate = "invalidate"
)

// Cache type constants.
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// API fetch status constants.
const (
	FetchStatusSuccess = "success"
	FetchStatusError   = "error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

// Navigation result constants.
const (
	NavigationIssued  = "issued"
	NavigationSkipped = "skipped"
	NavigationInvalid = "invalid"
)
