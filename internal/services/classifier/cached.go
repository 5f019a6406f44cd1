package classifier

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/etkecc/langdetect/internal/metrics"
	"github.com/etkecc/langdetect/internal/model"
)

// Cached memoizes classifier results by text.
// Classification is deterministic, so cached results never go stale
type Cached struct {
	backend Backend
	cache   *lru.Cache[string, model.ClassifierResult]
}

// NewCached wraps the backend with LRU cache of the given size
func NewCached(backend Backend, size int) (*Cached, error) {
	cache, err := lru.New[string, model.ClassifierResult](size)
	if err != nil {
		return nil, err
	}
	return &Cached{backend: backend, cache: cache}, nil
}

// Classify returns cached result, or classifies the text and caches the result
func (c *Cached) Classify(text string) *model.ClassifierResult {
	if result, ok := c.cache.Get(text); ok {
		metrics.CacheHits.Inc()
		return &result
	}

	metrics.CacheMisses.Inc()
	result := c.backend.Classify(text)
	if result == nil {
		return nil
	}
	c.cache.Add(text, *result)
	return result
}

// Languages of the wrapped backend
func (c *Cached) Languages() []string {
	return c.backend.Languages()
}

// Len returns the amount of cached results
func (c *Cached) Len() int {
	return c.cache.Len()
}
