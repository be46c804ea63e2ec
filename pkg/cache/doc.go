// Package cache provides an optional Redis-backed response cache for the
// dataset loader, with ETag and Last-Modified revalidation.
//
// A stored body is never served blindly: the loader always issues a
// conditional GET and only reuses the body on 304 Not Modified.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	manager := cache.NewManager(redisClient)
//
//	u, _ := url.Parse(dataset.DefaultURL)
//	entry, err := manager.Get(ctx, cache.KeyFromURL(u))
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// Cache miss - plain GET
//	}
//
// # Conditional Requests
//
//	if cache.ShouldMakeConditionalRequest(entry) {
//		cache.AddConditionalHeaders(req, entry)
//	}
//
// # Metrics
//
//   - kicktable_cache_hits_total - Cache hits
//   - kicktable_cache_misses_total - Cache misses
//   - kicktable_cache_size_bytes - Size of the last stored entry
//   - kicktable_conditional_requests_total - Conditional requests sent
//   - kicktable_304_responses_total - Conditional request successes
//   - kicktable_cache_errors_total{operation} - Cache operation errors
package cache
