package offlinecache

import (
	"context"
	"sort"
	"sync"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// memEntry is a stored response with its write order.
type memEntry struct {
	Val *Response
	Seq uint64
}

// MemoryConfig controls in-memory store instance.
type MemoryConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is store instance name, used in stats and logging.
	Name string

	// MaxEntries caps the number of stored responses, 0 keeps the store
	// unbounded. When the cap is exceeded, oldest-written entries are
	// evicted first.
	MaxEntries int
}

var _ Store = &Memory{}

// Memory is an in-memory response store.
type Memory struct {
	sync.RWMutex
	data map[string]memEntry
	seq  uint64

	config MemoryConfig
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewMemory creates an instance of in-memory store with optional configuration.
func NewMemory(cfg ...MemoryConfig) *Memory {
	config := MemoryConfig{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	return &Memory{
		data:   map[string]memEntry{},
		config: config,
		stat:   config.Stats,
		log:    config.Logger,
	}
}

// Read gets response.
func (c *Memory) Read(ctx context.Context, k string) (*Response, error) {
	closed := false

	c.RLock()
	if c.data == nil {
		closed = true
	}

	e, ok := c.data[k]
	c.RUnlock()

	if closed {
		return nil, ErrStoreClosed
	}

	if !ok {
		if c.log != nil {
			c.log.Debug(ctx, "cache miss",
				"name", c.config.Name,
				"key", k)
		}

		if c.stat != nil {
			c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
		}

		return nil, ErrEntryNotFound
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
	}

	if c.log != nil {
		c.log.Debug(ctx, "cache hit",
			"name", c.config.Name,
			"key", k,
			"status", e.Val.Status)
	}

	// Cloning so the caller cannot mutate the stored bytes.
	return e.Val.Clone(), nil
}

// Write sets response.
func (c *Memory) Write(ctx context.Context, k string, resp *Response) error {
	c.Lock()
	defer c.Unlock()

	if c.data == nil {
		if c.log != nil {
			c.log.Debug(ctx, "writing to a closed store", "name", c.config.Name, "key", k)
		}

		return ErrStoreClosed
	}

	c.seq++
	c.data[k] = memEntry{Val: resp.Clone(), Seq: c.seq}

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k, "status", resp.Status)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}

	if c.config.MaxEntries > 0 && len(c.data) > c.config.MaxEntries {
		c.evictOldest(ctx, len(c.data)-c.config.MaxEntries)
	}

	return nil
}

// evictOldest removes n oldest-written entries, caller must hold the lock.
func (c *Memory) evictOldest(ctx context.Context, n int) {
	type victim struct {
		key string
		seq uint64
	}

	victims := make([]victim, 0, len(c.data))

	for k, e := range c.data {
		victims = append(victims, victim{key: k, seq: e.Seq})
	}

	// Sort entries to put oldest writes in head.
	sort.Slice(victims, func(i, j int) bool {
		return victims[i].seq < victims[j].seq
	})

	if n > len(victims) {
		n = len(victims)
	}

	for i := 0; i < n; i++ {
		delete(c.data, victims[i].key)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricEvict, float64(n), "name", c.config.Name)
	}
}

// RemoveAll deletes all entries.
func (c *Memory) RemoveAll() {
	c.Lock()
	c.data = make(map[string]memEntry)
	c.Unlock()
}

// Close disables store instance.
func (c *Memory) Close() error {
	c.Lock()
	c.data = nil
	c.Unlock()

	return nil
}

// Len returns number of responses in store.
func (c *Memory) Len() int {
	c.RLock()
	cnt := len(c.data)
	c.RUnlock()

	return cnt
}

// Walk walks stored responses.
func (c *Memory) Walk(walkFn func(key string, resp *Response) error) (int, error) {
	c.RLock()
	defer c.RUnlock()

	n := 0

	for k, e := range c.data {
		c.RUnlock()

		err := walkFn(k, e.Val)

		c.RLock()

		if err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}
