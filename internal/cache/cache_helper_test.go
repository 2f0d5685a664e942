package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *CacheManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheManager(client, 0)
}

func TestCatalogTTLFollowsConfiguration(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cm := NewCacheManager(client, 2*time.Hour)
	if got := cm.Catalog.DefaultTTL(); got != 2*time.Hour {
		t.Errorf("catalog TTL = %v, want 2h", got)
	}

	ctx := context.Background()
	if err := cm.Catalog.Set(ctx, "list:q=:page=1", "cached", cm.Catalog.DefaultTTL()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if ttl := mr.TTL("catalog:list:q=:page=1"); ttl != 2*time.Hour {
		t.Errorf("stored key TTL = %v, want 2h", ttl)
	}

	if got := NewCacheManager(client, 0).Catalog.DefaultTTL(); got != CatalogCacheConfig.TTL {
		t.Errorf("unset TTL = %v, want default %v", got, CatalogCacheConfig.TTL)
	}
}

func TestCacheSetGetRoundTrip(t *testing.T) {
	cm := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := cm.Catalog.Set(ctx, "list:q=:page=1", &payload{Name: "go", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got payload
	if err := cm.Catalog.Get(ctx, "list:q=:page=1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "go" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestCacheGetMiss(t *testing.T) {
	cm := newTestCache(t)

	var dest string
	err := cm.Course.Get(context.Background(), "id:42", &dest)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Get error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheOrExecuteFetchesOnceThenHits(t *testing.T) {
	cm := newTestCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func() (interface{}, error) {
		fetches++
		return map[string]int{"total": 25}, nil
	}

	for i := 0; i < 3; i++ {
		var dest map[string]int
		if err := cm.Catalog.CacheOrExecute(ctx, "list:q=go", &dest, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if dest["total"] != 25 {
			t.Errorf("dest = %v", dest)
		}
	}

	if fetches != 1 {
		t.Errorf("fetch ran %d times, want 1", fetches)
	}
}

func TestInvalidatePatternFlushesNamespaceOnly(t *testing.T) {
	cm := newTestCache(t)
	ctx := context.Background()

	keys := []string{"list:q=:page=1", "list:q=go:page=2"}
	for _, k := range keys {
		if err := cm.Catalog.Set(ctx, k, "cached", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	if err := cm.Course.Set(ctx, "id:7", "cached", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := cm.Catalog.InvalidatePattern(ctx, "list:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	var dest string
	for _, k := range keys {
		if err := cm.Catalog.Get(ctx, k, &dest); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("catalog key %s survived the flush", k)
		}
	}
	if err := cm.Course.Get(ctx, "id:7", &dest); err != nil {
		t.Errorf("course key flushed by catalog invalidation: %v", err)
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	cm := NewCacheManager(nil, 0)
	ctx := context.Background()

	fetches := 0
	fetch := func() (interface{}, error) {
		fetches++
		return "value", nil
	}

	for i := 0; i < 2; i++ {
		var dest string
		if err := cm.Catalog.CacheOrExecute(ctx, "k", &dest, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if dest != "value" {
			t.Errorf("dest = %q", dest)
		}
	}

	// Without a cache every call falls through to the fetch.
	if fetches != 2 {
		t.Errorf("fetch ran %d times, want 2", fetches)
	}

	if err := cm.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("HealthCheck = %v, want ErrCacheNotAvailable", err)
	}
}
