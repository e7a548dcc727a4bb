package detect

import (
	"encoding/json"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/myselfbbs/vodplay/log"
	"github.com/myselfbbs/vodplay/source"
	"golang.org/x/exp/slices"
)

// DefaultCacheSize is the capacity used when none is configured.
const DefaultCacheSize = 100

// Cache memoizes ClassifySet by episode set content.
// It is bounded, evicts the least recently used entry and has no expiry.
// Safe for concurrent use.
type Cache struct {
	entries  *lru.Cache[string, Result]
	capacity int
}

// NewCache creates a cache holding at most capacity results.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("detection cache capacity must be positive, got %d", capacity)
	}

	entries, err := lru.NewWithEvict[string, Result](capacity, func(key string, value Result) {
		log.WithFields(log.Fields{
			"episodes": value.Total,
			"format":   value.Dominant.String(),
		}).Debug("detection cache evicted entry")
	})
	if err != nil {
		return nil, err
	}

	return &Cache{entries: entries, capacity: capacity}, nil
}

// ClassifySet returns the cached result for the set content, classifying
// and storing it on a miss. Hits come back with FromCache set.
func (c *Cache) ClassifySet(set *source.EpisodeSet) Result {
	key, err := Key(set)
	if err != nil {
		log.Warnf("detection cache bypassed: %s", err)
		return ClassifySet(set)
	}

	if cached, ok := c.entries.Get(key); ok {
		hit := cached.clone()
		hit.FromCache = true
		return hit
	}

	result := ClassifySet(set)
	c.entries.Add(key, result.clone())
	return result
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Capacity returns the maximum number of cached results.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.entries.Purge()
}

type keyEntry struct {
	Label string       `json:"l"`
	Token source.Token `json:"t"`
}

// Key serializes the (label, token) pairs of a set sorted by label, so
// sets with equal content map to the same key whatever their order.
func Key(set *source.EpisodeSet) (string, error) {
	episodes := set.Episodes()
	entries := make([]keyEntry, len(episodes))
	for i, e := range episodes {
		entries[i] = keyEntry{Label: e.Label, Token: e.Token}
	}

	slices.SortFunc(entries, func(a, b keyEntry) int {
		return strings.Compare(a.Label, b.Label)
	})

	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
