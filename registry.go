package offlinecache

import (
	"context"
	"sort"
	"sync"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// RegistryConfig controls in-memory store registry.
type RegistryConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// NewStore builds a store for a freshly opened name, NewMemory by default.
	NewStore func(name string) Store
}

var _ Registry = &StoreRegistry{}

// StoreRegistry is an in-memory registry of named stores.
type StoreRegistry struct {
	mu     sync.Mutex
	stores map[string]Store

	config RegistryConfig
	log    ctxd.Logger
}

// NewRegistry creates an instance of in-memory store registry with optional configuration.
func NewRegistry(cfg ...RegistryConfig) *StoreRegistry {
	config := RegistryConfig{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	if config.NewStore == nil {
		config.NewStore = func(name string) Store {
			return NewMemory(MemoryConfig{
				Name:   name,
				Logger: config.Logger,
				Stats:  config.Stats,
			})
		}
	}

	return &StoreRegistry{
		stores: map[string]Store{},
		config: config,
		log:    config.Logger,
	}
}

// Open returns the store with the given name, creating it on first open.
func (r *StoreRegistry) Open(ctx context.Context, name string) (Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[name]; ok {
		return s, nil
	}

	if r.log != nil {
		r.log.Debug(ctx, "opening store", "name", name)
	}

	s := r.config.NewStore(name)
	r.stores[name] = s

	return s, nil
}

// Names returns names of existing stores in lexical order.
func (r *StoreRegistry) Names(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

// Delete removes the named store and its entries, unknown names are ignored.
func (r *StoreRegistry) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	s, ok := r.stores[name]
	delete(r.stores, name)
	r.mu.Unlock()

	if !ok {
		return nil
	}

	if r.log != nil {
		r.log.Debug(ctx, "deleted store", "name", name)
	}

	if closer, ok := s.(interface{ Close() error }); ok {
		return closer.Close()
	}

	return nil
}
