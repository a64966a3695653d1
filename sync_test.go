package offlinecache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stock-finanzas/offlinecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyncWorker(t *testing.T, syncFunc offlinecache.SyncFunc) *offlinecache.Worker {
	t.Helper()

	w, err := offlinecache.NewWorker(offlinecache.Config{
		Origin:   "https://stock.example.com",
		Assets:   []string{},
		Fetcher:  newScriptedFetcher(),
		SyncFunc: syncFunc,
	})
	require.NoError(t, err)

	return w
}

func TestWorker_Sync(t *testing.T) {
	ctx := context.Background()
	runs := 0

	w := newSyncWorker(t, func(ctx context.Context) error {
		runs++

		return nil
	})

	// Only the sync-data tag is honored.
	require.NoError(t, w.Sync(ctx, offlinecache.DefaultSyncTag))
	assert.Equal(t, 1, runs)

	// Any other tag is ignored without error.
	require.NoError(t, w.Sync(ctx, "otra-cosa"))
	assert.Equal(t, 1, runs)
}

func TestWorker_Sync_defaultNoOp(t *testing.T) {
	ctx := context.Background()
	w := newSyncWorker(t, nil)

	// The placeholder sync always resolves successfully.
	assert.NoError(t, w.Sync(ctx, offlinecache.DefaultSyncTag))
}

func TestWorker_Sync_failurePropagates(t *testing.T) {
	ctx := context.Background()
	syncErr := errors.New("sync pipeline down")

	w := newSyncWorker(t, func(ctx context.Context) error {
		return syncErr
	})

	// Failures are not retried, the host decides.
	assert.Equal(t, syncErr, w.Sync(ctx, offlinecache.DefaultSyncTag))
}

func TestWorker_RegisterSync(t *testing.T) {
	ctx := context.Background()
	w := newSyncWorker(t, nil)

	w.RegisterSync(offlinecache.DefaultSyncTag)
	w.RegisterSync("otra-cosa")
	w.RegisterSync(offlinecache.DefaultSyncTag)

	assert.Equal(t, []string{"otra-cosa", offlinecache.DefaultSyncTag}, w.PendingSyncs())

	require.NoError(t, w.Sync(ctx, offlinecache.DefaultSyncTag))
	assert.Equal(t, []string{"otra-cosa"}, w.PendingSyncs())
}
