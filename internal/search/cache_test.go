package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"framecraft/internal/pkg/errors"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = value
}

type countingSearcher struct {
	calls  int
	result *Result
	err    error
}

func (s *countingSearcher) Search(_ context.Context, _ Query) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestCachedSearcher_HitsCacheOnRepeat(t *testing.T) {
	next := &countingSearcher{result: &Result{
		TotalResults: 1,
		Photos:       []Photo{{ID: 7, Src: PhotoSrc{Original: "https://images.pexels.com/7.jpeg"}}},
	}}
	cache := newMemoryCache()
	s := NewCachedSearcher(next, cache, nil)

	first, err := s.Search(context.Background(), Query{Text: "Forest", PerPage: 15, Page: 1})
	if err != nil {
		t.Fatalf("first search: %v", err)
	}
	second, err := s.Search(context.Background(), Query{Text: "  forest ", PerPage: 15, Page: 1})
	if err != nil {
		t.Fatalf("second search: %v", err)
	}

	if next.calls != 1 {
		t.Errorf("expected provider to be called once, got %d", next.calls)
	}
	if second.Photos[0].Src.Original != first.Photos[0].Src.Original {
		t.Errorf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestCachedSearcher_DoesNotCacheEmptyOrErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		next := &countingSearcher{result: &Result{}}
		cache := newMemoryCache()
		s := NewCachedSearcher(next, cache, nil)

		for i := 0; i < 2; i++ {
			if _, err := s.Search(context.Background(), Query{Text: "zzzz"}); err != nil {
				t.Fatalf("search: %v", err)
			}
		}
		if next.calls != 2 || cache.sets != 0 {
			t.Errorf("calls=%d sets=%d, want 2 and 0", next.calls, cache.sets)
		}
	})

	t.Run("error", func(t *testing.T) {
		next := &countingSearcher{err: errors.Remote(Provider, 500, "boom", nil)}
		cache := newMemoryCache()
		s := NewCachedSearcher(next, cache, nil)

		if _, err := s.Search(context.Background(), Query{Text: "cats"}); !errors.IsRemote(err) {
			t.Fatalf("expected remote error to pass through, got %v", err)
		}
		if cache.sets != 0 {
			t.Errorf("expected no cache writes, got %d", cache.sets)
		}
	})
}

func TestCachedSearcher_IgnoresCorruptEntries(t *testing.T) {
	next := &countingSearcher{result: &Result{TotalResults: 1, Photos: []Photo{{ID: 1}}}}
	cache := newMemoryCache()
	cache.data[cacheKey(Query{Text: "cats"})] = []byte("{not json")

	if _, err := NewCachedSearcher(next, cache, nil).Search(context.Background(), Query{Text: "cats"}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if next.calls != 1 {
		t.Errorf("expected fallback to provider, got %d calls", next.calls)
	}
}

func TestRedisCache_UnreachableServerIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewRedisCache(client, 0, nil)
	if c.ttl != DefaultCacheTTL {
		t.Errorf("expected default ttl, got %v", c.ttl)
	}

	ctx := context.Background()
	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected a miss when redis is unreachable")
	}
	if err := c.Ping(ctx); err == nil {
		t.Error("expected ping to fail")
	}
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(Query{Text: "Misty  Forest", PerPage: 15, Page: 1})
	b := cacheKey(Query{Text: "misty forest", PerPage: 15, Page: 1})
	c := cacheKey(Query{Text: "misty forest", PerPage: 15, Page: 2})

	if a != b {
		t.Errorf("expected normalized keys to match: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("expected page to be part of the key")
	}
}
