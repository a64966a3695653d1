package offlinecache

import (
	"context"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	gocache "github.com/patrickmn/go-cache"
)

// GoCacheConfig controls go-cache backed store instance.
type GoCacheConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is store instance name, used in stats and logging.
	Name string

	// TimeToLive is delay before entry expiration, default is no expiration.
	//
	// Expiration bounds cache growth by age, the worker itself never
	// expires captured responses.
	TimeToLive time.Duration

	// CleanupInterval is delay between removals of expired entries, default 10m.
	CleanupInterval time.Duration
}

var _ Store = &GoCache{}

// GoCache is a response store backed by patrickmn/go-cache.
//
// Useful when a host wants age-based bounds on the offline cache.
type GoCache struct {
	c *gocache.Cache

	config GoCacheConfig
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewGoCache creates an instance of go-cache backed store with optional configuration.
func NewGoCache(cfg ...GoCacheConfig) *GoCache {
	config := GoCacheConfig{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	ttl := config.TimeToLive
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}

	cleanup := config.CleanupInterval
	if cleanup == 0 {
		cleanup = 10 * time.Minute
	}

	return &GoCache{
		c:      gocache.New(ttl, cleanup),
		config: config,
		log:    config.Logger,
		stat:   config.Stats,
	}
}

// Read gets response.
func (c *GoCache) Read(ctx context.Context, k string) (*Response, error) {
	v, ok := c.c.Get(k)
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
func (c *GoCache) Write(ctx context.Context, k string, resp *Response) error {
	ttl := TTL(ctx)
	if ttl == DefaultTTL {
		ttl = gocache.DefaultExpiration
	}

	c.c.Set(k, resp.Clone(), ttl)

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k, "status", resp.Status)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}

	return nil
}

// RemoveAll deletes all entries.
func (c *GoCache) RemoveAll() {
	c.c.Flush()
}

// Len returns number of responses in store, including not yet cleaned expired ones.
func (c *GoCache) Len() int {
	return c.c.ItemCount()
}
