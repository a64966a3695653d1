package offlinecache

import (
	"context"
	"sort"

	"github.com/puzpuzpuz/xsync"
)

// DefaultSyncTag is the only background sync tag the worker honors.
const DefaultSyncTag = "sync-data"

// SyncFunc runs when a honored background sync event fires.
type SyncFunc func(ctx context.Context) error

// SyncRegistry tracks pending background sync registrations by tag.
type SyncRegistry struct {
	tags *xsync.Map
}

// NewSyncRegistry creates an empty registration set.
func NewSyncRegistry() *SyncRegistry {
	return &SyncRegistry{tags: xsync.NewMap()}
}

// Register marks a tag as pending, registering twice is a no-op.
func (r *SyncRegistry) Register(tag string) {
	r.tags.Store(tag, struct{}{})
}

// Pending returns pending tags in lexical order.
func (r *SyncRegistry) Pending() []string {
	var tags []string

	r.tags.Range(func(tag string, _ interface{}) bool {
		tags = append(tags, tag)

		return true
	})

	sort.Strings(tags)

	return tags
}

// take removes a pending tag, reporting whether it was registered.
func (r *SyncRegistry) take(tag string) bool {
	_, ok := r.tags.Load(tag)
	if ok {
		r.tags.Delete(tag)
	}

	return ok
}

// RegisterSync requests a background sync for the tag, delivered by the
// host through Sync when connectivity returns.
func (w *Worker) RegisterSync(tag string) {
	w.syncs.Register(tag)
}

// PendingSyncs returns tags registered and not yet delivered.
func (w *Worker) PendingSyncs() []string {
	return w.syncs.Pending()
}

// Sync handles a background sync event. Only the configured tag is
// honored, any other tag is ignored without error. Failures are not
// retried by the worker, retry is the host's call.
func (w *Worker) Sync(ctx context.Context, tag string) error {
	if tag != w.config.SyncTag {
		w.log.Debug(ctx, "ignoring sync event", "tag", tag)

		return nil
	}

	w.syncs.take(tag)

	if err := w.config.SyncFunc(ctx); err != nil {
		return err
	}

	w.log.Debug(ctx, "sync complete", "tag", tag)
	w.stat.Add(ctx, MetricSync, 1, "version", w.config.Version)

	return nil
}
