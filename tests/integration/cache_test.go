package integration

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/Sternrassler/kickstarter-table/internal/testutil"
	"github.com/Sternrassler/kickstarter-table/pkg/cache"
	"github.com/Sternrassler/kickstarter-table/pkg/dataset"
	"github.com/Sternrassler/kickstarter-table/pkg/view"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	t.Cleanup(func() {
		redisClient.Close()
		container.Terminate(ctx)
	})

	return redisClient
}

func newCachedLoader(t *testing.T, rawURL string, manager *cache.Manager) *dataset.Loader {
	t.Helper()

	cfg := dataset.DefaultConfig()
	cfg.URL = rawURL
	cfg.Timeout = 5 * time.Second
	cfg.Cache = manager

	l, err := dataset.NewLoader(cfg)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	return l
}

// TestCachedLoad_Revalidation covers miss, store, conditional request and 304 reuse.
func TestCachedLoad_Revalidation(t *testing.T) {
	redisClient := setupRedis(t)
	manager := cache.NewManager(redisClient)

	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetHandler(testutil.DatasetPath, testutil.NewConditionalHandler(`"v1"`, testutil.Projects(7)))

	loader := newCachedLoader(t, mock.DatasetURL(), manager)
	ctx := context.Background()

	t.Log("Load 1: cache miss")
	ds1, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("Load 1 error = %v", err)
	}
	if ds1.Len() != 7 {
		t.Errorf("Load 1 records = %d, want 7", ds1.Len())
	}
	if mock.ConditionalCount() != 0 {
		t.Errorf("Load 1 conditional requests = %d, want 0", mock.ConditionalCount())
	}

	u, _ := url.Parse(mock.DatasetURL())
	entry, err := manager.Get(ctx, cache.KeyFromURL(u))
	if err != nil {
		t.Fatalf("cache entry after Load 1: %v", err)
	}
	if entry.ETag != `"v1"` {
		t.Errorf("cached ETag = %q, want %q", entry.ETag, `"v1"`)
	}

	t.Log("Load 2: conditional request answered with 304")
	ds2, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("Load 2 error = %v", err)
	}
	if ds2.Len() != 7 {
		t.Errorf("Load 2 records = %d, want 7", ds2.Len())
	}
	if mock.RequestCount() != 2 {
		t.Errorf("requests = %d, want 2", mock.RequestCount())
	}
	if mock.ConditionalCount() != 1 {
		t.Errorf("conditional requests = %d, want 1", mock.ConditionalCount())
	}
}

// TestCachedLoad_ChangedDataset replaces the stored body when the ETag changes.
func TestCachedLoad_ChangedDataset(t *testing.T) {
	manager := cache.NewManager(setupRedis(t))

	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetHandler(testutil.DatasetPath, testutil.NewConditionalHandler(`"v1"`, testutil.Projects(3)))

	loader := newCachedLoader(t, mock.DatasetURL(), manager)
	ctx := context.Background()

	if _, err := loader.Load(ctx); err != nil {
		t.Fatalf("Load 1 error = %v", err)
	}

	mock.SetHandler(testutil.DatasetPath, testutil.NewConditionalHandler(`"v2"`, testutil.Projects(8)))

	ds, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("Load 2 error = %v", err)
	}
	if ds.Len() != 8 {
		t.Errorf("records = %d, want 8 from the changed dataset", ds.Len())
	}
}

// TestCachedView_HTTPErrorNotCached keeps a failed load out of the cache.
func TestCachedView_HTTPErrorNotCached(t *testing.T) {
	manager := cache.NewManager(setupRedis(t))

	mock := testutil.NewMockDataset()
	defer mock.Close()
	mock.SetResponse(testutil.NewServerErrorResponse())

	v := view.New(newCachedLoader(t, mock.DatasetURL(), manager))
	defer v.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := v.Mount(ctx); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := v.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if got := v.State().Status(); got != view.StatusFailed {
		t.Fatalf("Status() = %q, want %q", got, view.StatusFailed)
	}

	u, _ := url.Parse(mock.DatasetURL())
	if _, err := manager.Get(context.Background(), cache.KeyFromURL(u)); err != cache.ErrCacheMiss {
		t.Errorf("cache Get() error = %v, want ErrCacheMiss", err)
	}
}
