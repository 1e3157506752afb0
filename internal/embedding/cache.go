package embedding

// vectorCache is a fixed-capacity vector store keyed by content hash.
// Eviction is first-in-first-out: when full, the single oldest-inserted
// entry is dropped before a new one is stored. Reads do not promote an
// entry, so eviction order depends only on insertion order.
type vectorCache struct {
	capacity int
	order    []string
	entries  map[string][]float64
	hits     int
	misses   int
}

func newVectorCache(capacity int) *vectorCache {
	return &vectorCache{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		entries:  make(map[string][]float64, capacity),
	}
}

// get returns the cached vector for a key, if present.
func (c *vectorCache) get(key string) ([]float64, bool) {
	vec, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return vec, ok
}

// put stores a vector, evicting the oldest entry when at capacity.
func (c *vectorCache) put(key string, vec []float64) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = vec
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.order = append(c.order, key)
	c.entries[key] = vec
}

func (c *vectorCache) len() int {
	return len(c.entries)
}
