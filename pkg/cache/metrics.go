package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kicktable_cache_hits_total",
			Help: "Total number of dataset cache hits",
		},
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kicktable_cache_misses_total",
			Help: "Total number of dataset cache misses",
		},
	)

	// CacheSize tracks the size of the last stored entry in bytes
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kicktable_cache_size_bytes",
			Help: "Size of the last stored dataset cache entry in bytes",
		},
	)

	// ConditionalRequestsSent tracks requests sent with If-None-Match or If-Modified-Since
	ConditionalRequestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kicktable_conditional_requests_total",
			Help: "Total number of conditional dataset requests sent",
		},
	)

	// NotModifiedResponses tracks 304 Not Modified responses
	NotModifiedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kicktable_304_responses_total",
			Help: "Total number of 304 Not Modified dataset responses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kicktable_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
