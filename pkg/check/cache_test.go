package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheChecksOncePerURL(t *testing.T) {
	calls := 0
	cache := NewCache(func(url string) Result {
		calls++
		return Result{Kind: KindStatus, Code: 200}
	})

	first := cache.GetOrCheck("https://example.com/page")
	second := cache.GetOrCheck("https://example.com/page")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Hits())
	assert.Equal(t, 1, cache.Len())
}

func TestCacheNormalizesKeys(t *testing.T) {
	calls := 0
	cache := NewCache(func(url string) Result {
		calls++
		return Result{Kind: KindStatus, Code: 200}
	})

	cache.GetOrCheck("https://example.com/page")
	cache.GetOrCheck("HTTPS://Example.com/page")
	cache.GetOrCheck("https://example.com/page#history")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, cache.Hits())
}

func TestCacheDistinctURLs(t *testing.T) {
	calls := 0
	cache := NewCache(func(url string) Result {
		calls++
		if url == "https://example.com/missing" {
			return Result{Kind: KindStatus, Code: 404}
		}
		return Result{Kind: KindStatus, Code: 200}
	})

	ok := cache.GetOrCheck("https://example.com/page")
	missing := cache.GetOrCheck("https://example.com/missing")

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, cache.Len())
	assert.True(t, ok.OK())
	assert.False(t, missing.OK())
}

func TestCacheStoresFailureResults(t *testing.T) {
	calls := 0
	cache := NewCache(func(url string) Result {
		calls++
		return Result{Kind: KindTimeout}
	})

	// A timeout is cached like any other result: no retry on re-reference.
	cache.GetOrCheck("https://slow.example.com/")
	res := cache.GetOrCheck("https://slow.example.com/")

	assert.Equal(t, 1, calls)
	assert.Equal(t, KindTimeout, res.Kind)
}
