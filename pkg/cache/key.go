package cache

import (
	"net/url"
	"sort"
	"strings"
)

// KeyPrefix namespaces every key this package writes.
const KeyPrefix = "kicktable"

// CacheKey identifies a cached dataset response.
type CacheKey struct {
	// Scheme is "http" or "https". Empty keys omit it.
	Scheme string

	// Host is the dataset host, e.g. "raw.githubusercontent.com".
	Host string

	// Path is the dataset path.
	Path string

	// QueryParams are the query parameters of the dataset URL.
	QueryParams url.Values
}

// KeyFromURL builds the cache key for a dataset URL.
func KeyFromURL(u *url.URL) CacheKey {
	return CacheKey{
		Scheme:      strings.ToLower(u.Scheme),
		Host:        strings.ToLower(u.Host),
		Path:        u.Path,
		QueryParams: u.Query(),
	}
}

// String generates a deterministic key string.
// Format: kicktable:scheme://host/path:query1=val1:query2=val2a,val2b
func (k CacheKey) String() string {
	parts := []string{KeyPrefix}

	resource := strings.Trim(k.Host+"/"+strings.Trim(k.Path, "/"), "/")
	if resource != "" {
		if k.Scheme != "" {
			resource = k.Scheme + "://" + resource
		}
		parts = append(parts, resource)
	}

	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, key+"="+strings.Join(k.QueryParams[key], ","))
		}
	}

	return strings.Join(parts, ":")
}
