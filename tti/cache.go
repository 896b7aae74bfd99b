package tti

import (
	"container/list"
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Cache memoizes computed metrics per input snapshot. The computation
// is deterministic, so a hit is always safe to return. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a previously computed metric by fingerprint
	Get(key uint64) (Metric, bool)

	// Put stores a computed metric under its fingerprint
	Put(key uint64, m Metric)

	// Clear removes all cached metrics
	Clear()

	// Size returns the current number of cached metrics
	Size() int
}

// NoOpCache disables memoization.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(key uint64) (Metric, bool) {
	return Metric{}, false
}

func (c *NoOpCache) Put(key uint64, m Metric) {}

func (c *NoOpCache) Clear() {}

func (c *NoOpCache) Size() int {
	return 0
}

// CacheStats reports cache effectiveness counters.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// ComputedCache is a bounded LRU of computed metrics, keyed by the
// xxhash fingerprint of the input snapshot.
type ComputedCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[uint64]*list.Element
	stats    CacheStats
}

type cacheEntry struct {
	key    uint64
	metric Metric
}

// NewComputedCache creates an LRU metric cache holding up to capacity
// entries. Capacity values below one fall back to a single slot.
func NewComputedCache(capacity int) *ComputedCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ComputedCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[uint64]*list.Element, capacity),
	}
}

func (c *ComputedCache) Get(key uint64) (Metric, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return Metric{}, false
	}
	c.order.MoveToFront(elem)
	c.stats.Hits++
	return elem.Value.(*cacheEntry).metric, true
}

func (c *ComputedCache) Put(key uint64, m Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).metric = m
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, metric: m})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *ComputedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[uint64]*list.Element, c.capacity)
}

func (c *ComputedCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the hit/miss counters.
func (c *ComputedCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Fingerprint hashes one input snapshot into a cache key. Field order
// and the length prefixes between sections keep distinct snapshots from
// colliding structurally.
func Fingerprint(in Input) uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		d.Write(buf[:])
	}
	writeLen := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		d.Write(buf[:])
	}

	writeFloat(in.Timestamps.NavigationStart)
	writeFloat(in.Timestamps.FirstMeaningfulPaint)
	writeFloat(in.Timestamps.DOMContentLoaded)
	writeFloat(in.Timestamps.TraceEnd)

	writeLen(len(in.LongTasks))
	for _, t := range in.LongTasks {
		writeFloat(t.Start)
		writeFloat(t.End)
	}

	writeLen(len(in.Requests))
	for _, r := range in.Requests {
		writeFloat(r.Start)
		writeFloat(r.End)
		if r.Finished {
			d.Write([]byte{1})
		} else {
			d.Write([]byte{0})
		}
	}

	return d.Sum64()
}

// ComputeCached runs Compute through the cache. Only the Metric is
// memoized; callers needing the diagnostic QuietPeriodInfo should use
// Compute directly. Errors are never cached; they are as cheap to
// recompute as to look up.
func ComputeCached(c Cache, in Input) (Metric, error) {
	key := Fingerprint(in)
	if m, ok := c.Get(key); ok {
		return m, nil
	}

	m, _, err := Compute(in)
	if err != nil {
		return Metric{}, err
	}

	c.Put(key, m)
	return m, nil
}
