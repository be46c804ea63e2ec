package cache

import (
	"net/url"
	"testing"
)

func TestCacheKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  CacheKey
		want string
	}{
		{
			name: "host and path",
			key: CacheKey{
				Host: "raw.githubusercontent.com",
				Path: "/saaslabsco/frontend-assignment/refs/heads/master/frontend-assignment.json",
			},
			want: "kicktable:raw.githubusercontent.com/saaslabsco/frontend-assignment/refs/heads/master/frontend-assignment.json",
		},
		{
			name: "trailing slash trimmed",
			key: CacheKey{
				Host: "example.com",
				Path: "/data/",
			},
			want: "kicktable:example.com/data",
		},
		{
			name: "query params sorted",
			key: CacheKey{
				Host: "example.com",
				Path: "/data.json",
				QueryParams: url.Values{
					"v":     []string{"2"},
					"token": []string{"abc"},
				},
			},
			want: "kicktable:example.com/data.json:token=abc:v=2",
		},
		{
			name: "scheme prefixes resource",
			key: CacheKey{
				Scheme: "https",
				Host:   "example.com",
				Path:   "/data.json",
			},
			want: "kicktable:https://example.com/data.json",
		},
		{
			name: "repeated param keeps every value",
			key: CacheKey{
				Host: "example.com",
				Path: "/data.json",
				QueryParams: url.Values{
					"v": []string{"1", "2"},
				},
			},
			want: "kicktable:example.com/data.json:v=1,2",
		},
		{
			name: "empty key",
			key:  CacheKey{},
			want: "kicktable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://Example.COM/data.json?b=2&a=1", "kicktable:https://example.com/data.json:a=1:b=2"},
		{"http://example.com/data.json", "kicktable:http://example.com/data.json"},
		{"https://example.com/data.json?v=1&v=2", "kicktable:https://example.com/data.json:v=1,2"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			if err != nil {
				t.Fatalf("parse url: %v", err)
			}
			if got := KeyFromURL(u).String(); got != tt.want {
				t.Errorf("KeyFromURL().String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyFromURL_DistinctKeys(t *testing.T) {
	pairs := [][2]string{
		{"http://example.com/data.json", "https://example.com/data.json"},
		{"https://example.com/data.json?v=1", "https://example.com/data.json?v=1&v=2"},
	}

	for _, p := range pairs {
		a, _ := url.Parse(p[0])
		b, _ := url.Parse(p[1])
		if KeyFromURL(a).String() == KeyFromURL(b).String() {
			t.Errorf("%s and %s share key %q", p[0], p[1], KeyFromURL(a).String())
		}
	}
}

func TestCacheKey_Determinism(t *testing.T) {
	key := CacheKey{
		Host: "example.com",
		Path: "/data.json",
		QueryParams: url.Values{
			"z": []string{"1"},
			"a": []string{"2"},
			"m": []string{"3"},
		},
	}

	first := key.String()
	for i := 0; i < 100; i++ {
		if got := key.String(); got != first {
			t.Fatalf("iteration %d: String() = %q, want %q", i, got, first)
		}
	}
}
