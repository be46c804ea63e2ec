// Package metrics serves the Prometheus registry the other packages register
// into. Collectors are declared next to the code that updates them
// (dataset, pagination, cache) to avoid circular imports.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Gatherer is the gatherer served by Handler. promauto collectors register
// on the default registerer, which feeds it.
var Gatherer = prometheus.DefaultGatherer

// shutdownTimeout bounds graceful shutdown of the metrics server.
const shutdownTimeout = 5 * time.Second

// Handler returns the /metrics handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Serve exposes Handler on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Metrics server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Str("addr", addr).Msg("Metrics server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}

// Metrics Documentation
//
// Dataset Metrics (pkg/dataset):
//   - kicktable_dataset_requests_total{status} (Counter): requests by HTTP status or "network_error"
//   - kicktable_dataset_request_duration_seconds (Histogram): load duration
//   - kicktable_dataset_errors_total{class} (Counter): errors by class (network, http, decode)
//   - kicktable_dataset_records (Gauge): records in the last loaded dataset
//
// Pagination Metrics (pkg/pagination):
//   - kicktable_page_navigations_total{direction, result} (Counter): result is "moved" or "noop"
//
// Cache Metrics (pkg/cache):
//   - kicktable_cache_hits_total, kicktable_cache_misses_total (Counter)
//   - kicktable_cache_size_bytes (Gauge)
//   - kicktable_conditional_requests_total, kicktable_304_responses_total (Counter)
//   - kicktable_cache_errors_total{operation} (Counter)
//
// Example Prometheus Queries:
//
//   # Revalidation hit rate
//   rate(kicktable_304_responses_total[5m]) / rate(kicktable_conditional_requests_total[5m])
//
//   # P95 load latency
//   histogram_quantile(0.95, rate(kicktable_dataset_request_duration_seconds_bucket[5m]))
