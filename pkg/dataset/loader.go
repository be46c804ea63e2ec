package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Sternrassler/kickstarter-table/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultURL is the published crowdfunding dataset.
const DefaultURL = "https://raw.githubusercontent.com/saaslabsco/frontend-assignment/refs/heads/master/frontend-assignment.json"

// Prometheus metrics for dataset loading.
var (
	datasetRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kicktable_dataset_requests_total",
		Help: "Total dataset requests by status",
	}, []string{"status"})

	datasetRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kicktable_dataset_request_duration_seconds",
		Help:    "Dataset request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	datasetErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kicktable_dataset_errors_total",
		Help: "Total dataset load errors by class",
	}, []string{"class"})

	datasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kicktable_dataset_records",
		Help: "Number of records in the last successfully loaded dataset",
	})
)

// Config holds the loader configuration.
type Config struct {
	// URL of the JSON dataset.
	URL string

	// UserAgent header sent with the request.
	UserAgent string

	// Timeout bounds the whole request. Zero means no client-side timeout.
	Timeout time.Duration

	// Cache enables conditional revalidation of a stored response.
	// Nil disables caching: every Load issues one unconditional GET.
	Cache *cache.Manager
}

// DefaultConfig returns the configuration for the published dataset.
func DefaultConfig() Config {
	return Config{
		URL:       DefaultURL,
		UserAgent: "kicktable/0.1.0",
		Timeout:   30 * time.Second,
	}
}

// Loader performs the remote read of the dataset.
type Loader struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// NewLoader creates a new dataset loader.
func NewLoader(cfg Config) (*Loader, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("dataset url is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	logger := log.With().Str("component", "dataset-loader").Logger()

	return &Loader{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cfg.Cache,
		config: cfg,
		logger: logger,
	}, nil
}

// Load fetches and parses the dataset. It never retries.
//
// Failures are reported as *NetworkError when the transport rejects the
// request, *HTTPError for a non-2xx status and *DecodeError for a body that
// is not a JSON array of objects.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	startTime := time.Now()
	defer func() {
		datasetRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	body, err := l.fetch(ctx)
	if err != nil {
		class := Classify(err)
		datasetErrorsTotal.WithLabelValues(string(class)).Inc()
		l.logger.Error().
			Err(err).
			Str("url", l.config.URL).
			Str("error_class", string(class)).
			Msg("Dataset load failed")
		return nil, err
	}

	ds, err := Parse(body)
	if err != nil {
		datasetErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		l.logger.Error().Err(err).Str("url", l.config.URL).Msg("Dataset decode failed")
		return nil, err
	}

	datasetRecords.Set(float64(ds.Len()))
	l.logger.Info().
		Str("url", l.config.URL).
		Int("records", ds.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Dataset loaded")

	return ds, nil
}

// fetch returns the response body of a successful GET, revalidating a cached
// copy when a cache is configured.
func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	var cacheKey cache.CacheKey
	var cachedEntry *cache.CacheEntry
	if l.cache != nil {
		cacheKey = cache.KeyFromURL(req.URL)
		cachedEntry, err = l.cache.Get(ctx, cacheKey)
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Warn().Err(err).Str("url", l.config.URL).Msg("Cache get error")
		}
		if cachedEntry != nil && cache.ShouldMakeConditionalRequest(cachedEntry) {
			cache.AddConditionalHeaders(req, cachedEntry)
			cache.ConditionalRequestsSent.Inc()
			l.logger.Debug().
				Str("url", l.config.URL).
				Str("etag", cachedEntry.ETag).
				Msg("Making conditional request")
		}
	}

	l.logger.Debug().Str("url", l.config.URL).Msg("Requesting dataset")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		datasetRequestsTotal.WithLabelValues("network_error").Inc()
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	datasetRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotModified && cachedEntry != nil {
		cache.NotModifiedResponses.Inc()
		l.logger.Debug().Str("url", l.config.URL).Msg("304 Not Modified - using cache")

		if expiresStr := resp.Header.Get("Expires"); expiresStr != "" {
			if newExpires, err := http.ParseTime(expiresStr); err == nil {
				if err := l.cache.UpdateTTL(ctx, cacheKey, newExpires); err != nil {
					l.logger.Warn().Err(err).Msg("Failed to update cache TTL")
				}
			}
		}
		return cachedEntry.Data, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.logger.Warn().
			Str("url", l.config.URL).
			Int("status_code", resp.StatusCode).
			Msg("Dataset request error")
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if l.cache != nil && resp.StatusCode == http.StatusOK {
		entry, err := cache.ResponseToEntry(resp)
		if err != nil {
			return nil, &NetworkError{Err: err}
		}
		if err := l.cache.Set(ctx, cacheKey, entry); err != nil {
			l.logger.Warn().Err(err).Msg("Failed to cache response")
		} else {
			l.logger.Debug().
				Str("url", l.config.URL).
				Dur("ttl", entry.TTL()).
				Msg("Cached response")
		}
		return entry.Data, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response body: %w", err)}
	}
	return body, nil
}

// SetHTTPClient replaces the HTTP client, e.g. to set a transport or timeout.
func (l *Loader) SetHTTPClient(client *http.Client) {
	l.httpClient = client
}
