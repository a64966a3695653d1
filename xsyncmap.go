package offlinecache

import (
	"context"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/puzpuzpuz/xsync"
)

// XSyncMapConfig controls xsync.Map backed store instance.
type XSyncMapConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is store instance name, used in stats and logging.
	Name string
}

var _ Store = &XSyncMap{}

// XSyncMap is a response store on a concurrent map, lock-free on the read path.
type XSyncMap struct {
	m *xsync.Map

	config XSyncMapConfig
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewXSyncMap creates an instance of concurrent map store with optional configuration.
func NewXSyncMap(cfg ...XSyncMapConfig) *XSyncMap {
	config := XSyncMapConfig{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	return &XSyncMap{
		m:      xsync.NewMap(),
		config: config,
		log:    config.Logger,
		stat:   config.Stats,
	}
}

// Read gets response.
func (c *XSyncMap) Read(ctx context.Context, k string) (*Response, error) {
	v, ok := c.m.Load(k)
	if !ok {
		if c.log != nil {
			c.log.Debug(ctx, "cache miss", "name", c.config.Name, "key", k)
		}

		if c.stat != nil {
			c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
		}

		return nil, ErrEntryNotFound
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
	}

	return v.(*Response).Clone(), nil
}

// Write sets response.
func (c *XSyncMap) Write(ctx context.Context, k string, resp *Response) error {
	c.m.Store(k, resp.Clone())

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k, "status", resp.Status)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}

	return nil
}

// RemoveAll deletes all entries.
func (c *XSyncMap) RemoveAll() {
	c.m.Range(func(k string, _ interface{}) bool {
		c.m.Delete(k)

		return true
	})
}

// Len returns number of responses in store.
func (c *XSyncMap) Len() int {
	cnt := 0

	c.m.Range(func(_ string, _ interface{}) bool {
		cnt++

		return true
	})

	return cnt
}

// Walk walks stored responses.
func (c *XSyncMap) Walk(walkFn func(key string, resp *Response) error) (int, error) {
	n := 0

	var err error

	c.m.Range(func(k string, v interface{}) bool {
		err = walkFn(k, v.(*Response))
		if err != nil {
			return false
		}

		n++

		return true
	})

	return n, err
}
