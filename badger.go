package offlinecache

import (
	"context"
	"errors"
	"sort"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	badger "github.com/dgraph-io/badger/v4"
)

// Key layout: "n/<store>" marks an existing store, "d/<store>/<key>" holds
// one captured response.
const (
	badgerNamePrefix = "n/"
	badgerDataPrefix = "d/"
)

// BadgerRegistryConfig controls persistent store registry.
type BadgerRegistryConfig struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Path is Badger database directory, ignored with InMemory.
	Path string

	// InMemory keeps the database off disk, handy in tests.
	InMemory bool
}

var _ Registry = &BadgerRegistry{}

// BadgerRegistry is a store registry persisted in a Badger database, so
// captured responses survive host restarts the way browser cache storage
// survives page reloads.
type BadgerRegistry struct {
	db *badger.DB

	config BadgerRegistryConfig
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewBadgerRegistry opens a persistent store registry.
func NewBadgerRegistry(config BadgerRegistryConfig) (*BadgerRegistry, error) {
	opts := badger.DefaultOptions(config.Path)
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}

	// Badger's own logger writes unstructured lines, config.Logger covers
	// the registry operations instead.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, ctxd.WrapError(context.Background(), err, "failed to open badger database",
			"path", config.Path)
	}

	return &BadgerRegistry{
		db:     db,
		config: config,
		log:    config.Logger,
		stat:   config.Stats,
	}, nil
}

// Open returns the store with the given name, creating it on first open.
func (r *BadgerRegistry) Open(ctx context.Context, name string) (Store, error) {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerNamePrefix+name), nil)
	})
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to open store", "name", name)
	}

	return &badgerStore{
		db:     r.db,
		name:   name,
		prefix: badgerDataPrefix + name + "/",
		log:    r.log,
		stat:   r.stat,
	}, nil
}

// Names returns names of existing stores in lexical order.
func (r *BadgerRegistry) Names(ctx context.Context) ([]string, error) {
	var names []string

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerNamePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().Key()[len(badgerNamePrefix):]))
		}

		return nil
	})
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to list stores")
	}

	sort.Strings(names)

	return names, nil
}

// Delete removes the named store and its entries, unknown names are ignored.
func (r *BadgerRegistry) Delete(ctx context.Context, name string) error {
	if err := r.db.DropPrefix([]byte(badgerDataPrefix + name + "/")); err != nil {
		return ctxd.WrapError(ctx, err, "failed to drop store entries", "name", name)
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerNamePrefix + name))
	})
	if err != nil {
		return ctxd.WrapError(ctx, err, "failed to delete store", "name", name)
	}

	if r.log != nil {
		r.log.Debug(ctx, "deleted store", "name", name)
	}

	return nil
}

// Close releases the database.
func (r *BadgerRegistry) Close() error {
	return r.db.Close()
}

var _ Store = &badgerStore{}

// badgerStore is a prefix-scoped view of the registry database.
type badgerStore struct {
	db     *badger.DB
	name   string
	prefix string
	log    ctxd.Logger
	stat   stats.Tracker
}

func (s *badgerStore) Read(ctx context.Context, k string) (*Response, error) {
	var raw []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(s.prefix + k))
		if err != nil {
			return err
		}

		raw, err = item.ValueCopy(nil)

		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		if s.log != nil {
			s.log.Debug(ctx, "cache miss", "name", s.name, "key", k)
		}

		if s.stat != nil {
			s.stat.Add(ctx, MetricMiss, 1, "name", s.name)
		}

		return nil, ErrEntryNotFound
	}

	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to read entry", "name", s.name, "key", k)
	}

	resp, err := decodeResponse(raw)
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to decode entry", "name", s.name, "key", k)
	}

	if s.stat != nil {
		s.stat.Add(ctx, MetricHit, 1, "name", s.name)
	}

	return resp, nil
}

func (s *badgerStore) Write(ctx context.Context, k string, resp *Response) error {
	raw, err := encodeResponse(resp)
	if err != nil {
		return ctxd.WrapError(ctx, err, "failed to encode entry", "name", s.name, "key", k)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(s.prefix+k), raw)

		if ttl := TTL(ctx); ttl != DefaultTTL {
			entry = entry.WithTTL(ttl)
		}

		return txn.SetEntry(entry)
	})
	if err != nil {
		return ctxd.WrapError(ctx, err, "failed to write entry", "name", s.name, "key", k)
	}

	if s.log != nil {
		s.log.Debug(ctx, "wrote to cache", "name", s.name, "key", k, "status", resp.Status)
	}

	if s.stat != nil {
		s.stat.Add(ctx, MetricWrite, 1, "name", s.name)
	}

	return nil
}

// Walk walks stored responses.
func (s *badgerStore) Walk(walkFn func(key string, resp *Response) error) (int, error) {
	n := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(s.prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			resp, err := decodeResponse(raw)
			if err != nil {
				return err
			}

			if err := walkFn(string(item.Key()[len(s.prefix):]), resp); err != nil {
				return err
			}

			n++
		}

		return nil
	})

	return n, err
}
