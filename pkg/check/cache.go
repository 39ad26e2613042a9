package check

import "github.com/creativecommons/linkchecker/pkg/process"

// CheckFunc probes one URL. Usually (*Checker).Check; tests substitute a spy.
type CheckFunc func(url string) Result

// Cache memoizes check results for the duration of one run so a URL
// referenced from several documents is probed once. Keys are the normalized
// form of the resolved URL. Append-only, no eviction, and deliberately not
// safe for concurrent use: the run is single-threaded.
type Cache struct {
	results map[string]Result
	check   CheckFunc
	hits    int
}

func NewCache(check CheckFunc) *Cache {
	return &Cache{
		results: make(map[string]Result),
		check:   check,
	}
}

// GetOrCheck returns the cached result for resolvedURL, probing and storing
// it on first sight.
func (c *Cache) GetOrCheck(resolvedURL string) Result {
	key := cacheKey(resolvedURL)
	if res, ok := c.results[key]; ok {
		c.hits++
		return res
	}

	res := c.check(resolvedURL)
	c.results[key] = res
	return res
}

// Hits is the number of lookups answered without a probe.
func (c *Cache) Hits() int { return c.hits }

// Len is the number of distinct URLs checked so far.
func (c *Cache) Len() int { return len(c.results) }

func cacheKey(resolvedURL string) string {
	key, err := process.Normalize(resolvedURL)
	if err != nil {
		return resolvedURL
	}
	return key
}
