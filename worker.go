package offlinecache

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// DefaultVersion is the current store identity. Bumping it retires the
// previous store on the next activation.
const DefaultVersion = "stock-finanzas-v1"

// DefaultOfflinePath is the cached document served to navigations that
// miss the cache while offline.
const DefaultOfflinePath = "/"

// DefaultAssets is the offline bootstrap manifest: local shell documents
// plus pinned third-party stylesheets and scripts.
func DefaultAssets() []string {
	return []string{
		"/",
		"/static/manifest.json",
		"https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css",
		"https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/js/bootstrap.bundle.min.js",
		"https://cdn.jsdelivr.net/npm/bootstrap-icons@1.10.0/font/bootstrap-icons.css",
	}
}

// Config is optional configuration for NewWorker.
type Config struct {
	// Version names the current store, DefaultVersion by default.
	Version string

	// Assets is the offline bootstrap manifest, DefaultAssets by default.
	// The list is captured at construction and immutable afterwards.
	Assets []string

	// Origin is the worker's own origin, for example
	// "https://stock.example.com". Absolute request URLs on another
	// origin are not intercepted. Empty origin treats only relative
	// URLs as same-origin.
	Origin string

	// OfflinePath is the navigation fallback document, DefaultOfflinePath by default.
	OfflinePath string

	// Registry manages versioned stores, in-memory registry by default.
	Registry Registry

	// Fetcher performs network requests, HTTPFetcher on Origin by default.
	Fetcher Fetcher

	// Notifier displays push notifications, NoOpNotifier by default.
	Notifier Notifier

	// Windows opens application windows on notification clicks,
	// NoOpWindows by default.
	Windows WindowOpener

	// SyncFunc runs on a honored background sync event. Default resolves
	// successfully without doing anything, an extension point.
	SyncFunc SyncFunc

	// SyncTag is the only sync tag honored, DefaultSyncTag by default.
	SyncTag string

	// Logger collects messages with context.
	Logger ctxd.Logger

	// Stats tracks stats.
	Stats stats.Tracker
}

// Worker applies the offline shell policy: versioned stores, install-time
// precache, network-first fetch handling, sync and push events.
//
// Please use NewWorker to create instance.
type Worker struct {
	config Config
	origin *url.URL
	syncs  *SyncRegistry
	log    ctxd.Logger
	stat   stats.Tracker
}

// NewWorker creates a Worker instance.
//
// Handlers are synchronous: returning from a handler is the completion
// the original runtime awaited, no work continues in background.
func NewWorker(config Config) (*Worker, error) {
	if config.Version == "" {
		config.Version = DefaultVersion
	}

	if config.Assets == nil {
		config.Assets = DefaultAssets()
	}

	if config.OfflinePath == "" {
		config.OfflinePath = DefaultOfflinePath
	}

	if config.SyncTag == "" {
		config.SyncTag = DefaultSyncTag
	}

	w := &Worker{config: config}

	w.log = config.Logger
	if w.log == nil {
		w.log = ctxd.NoOpLogger{}
	}

	w.stat = config.Stats
	if w.stat == nil {
		w.stat = stats.NoOp{}
	}

	if config.Origin != "" {
		o, err := url.Parse(config.Origin)
		if err != nil {
			return nil, ctxd.WrapError(context.Background(), err, "failed to parse origin",
				"origin", config.Origin)
		}

		w.origin = o
	}

	if w.config.Registry == nil {
		w.config.Registry = NewRegistry(RegistryConfig{
			Logger: config.Logger,
			Stats:  config.Stats,
		})
	}

	if w.config.Fetcher == nil {
		f, err := NewHTTPFetcher(config.Origin)
		if err != nil {
			return nil, err
		}

		w.config.Fetcher = f
	}

	if w.config.Notifier == nil {
		w.config.Notifier = NoOpNotifier{}
	}

	if w.config.Windows == nil {
		w.config.Windows = NoOpWindows{}
	}

	if w.config.SyncFunc == nil {
		w.config.SyncFunc = func(ctx context.Context) error { return nil }
	}

	w.syncs = NewSyncRegistry()

	return w, nil
}

// Version returns the current store name.
func (w *Worker) Version() string {
	return w.config.Version
}

// Install opens the current store and precaches the asset manifest.
//
// A failed precache batch is logged and absorbed, installation itself
// never fails on it and no partial batch is written.
func (w *Worker) Install(ctx context.Context) error {
	s, err := w.store(ctx)
	if err != nil {
		return err
	}

	if err := w.precache(ctx, s); err != nil {
		w.log.Warn(ctx, "failed to precache assets",
			"error", err,
			"version", w.config.Version)
		w.stat.Add(ctx, MetricPrecacheFailed, 1, "version", w.config.Version)

		return nil
	}

	w.stat.Add(ctx, MetricPrecache, float64(len(w.config.Assets)), "version", w.config.Version)

	return nil
}

// precache fetches every manifest asset and writes the batch only when
// all of them succeeded.
func (w *Worker) precache(ctx context.Context, s Store) error {
	type captured struct {
		key  string
		resp *Response
	}

	batch := make([]captured, 0, len(w.config.Assets))

	for _, asset := range w.config.Assets {
		req := Request{Method: http.MethodGet, URL: asset}

		resp, err := w.config.Fetcher.Fetch(ctx, req)
		if err != nil {
			return ctxd.WrapError(ctx, err, "failed to fetch asset", "asset", asset)
		}

		if !resp.OK() {
			return ctxd.WrapError(ctx, ErrUnexpectedStatus, "failed to precache asset",
				"asset", asset, "status", resp.Status)
		}

		batch = append(batch, captured{key: req.Key(w.origin), resp: resp})
	}

	for _, c := range batch {
		if err := s.Write(ctx, c.key, c.resp); err != nil {
			return ctxd.WrapError(ctx, err, "failed to store asset", "key", c.key)
		}
	}

	return nil
}

// Activate retires stores of other versions.
//
// Re-running activation with the current version is a no-op for the
// current store, only differing names are deleted.
func (w *Worker) Activate(ctx context.Context) error {
	names, err := w.config.Registry.Names(ctx)
	if err != nil {
		return ctxd.WrapError(ctx, err, "failed to list stores")
	}

	for _, name := range names {
		if name == w.config.Version {
			continue
		}

		if err := w.config.Registry.Delete(ctx, name); err != nil {
			return ctxd.WrapError(ctx, err, "failed to retire store", "name", name)
		}

		w.log.Info(ctx, "retired store", "name", name, "version", w.config.Version)
		w.stat.Add(ctx, MetricStoreRetired, 1, "name", name)
	}

	return nil
}

// HandleFetch applies the network-first policy to one request.
//
// Non-GET and cross-origin requests are not intercepted (ErrNotHandled),
// the host must forward them unmodified. A live success response is
// persisted and returned. On network failure the cached response is
// served, navigations fall back to the cached offline document, anything
// else resolves with no response (ErrNoResponse).
func (w *Worker) HandleFetch(ctx context.Context, req Request) (*Response, error) {
	if Bypass(ctx) || req.Method != http.MethodGet || !w.sameOrigin(req) {
		return nil, ErrNotHandled
	}

	s, err := w.store(ctx)
	if err != nil {
		return nil, err
	}

	key := req.Key(w.origin)

	resp, err := w.config.Fetcher.Fetch(ctx, req)
	if err == nil {
		if resp.OK() {
			if werr := s.Write(ctx, key, resp); werr != nil {
				w.log.Warn(ctx, "failed to persist response", "error", werr, "key", key)
			}
		}

		w.stat.Add(ctx, MetricNetwork, 1, "version", w.config.Version)

		return resp, nil
	}

	w.log.Debug(ctx, "network failed, falling back to cache", "error", err, "key", key)
	w.stat.Add(ctx, MetricNetworkFailed, 1, "version", w.config.Version)

	cached, cerr := s.Read(ctx, key)
	if cerr == nil {
		w.stat.Add(ctx, MetricFallback, 1, "version", w.config.Version)

		return cached, nil
	}

	if req.Navigate {
		offline, oerr := s.Read(ctx, Request{Method: http.MethodGet, URL: w.config.OfflinePath}.Key(w.origin))
		if oerr == nil {
			w.stat.Add(ctx, MetricOfflinePage, 1, "version", w.config.Version)

			return offline, nil
		}
	}

	return nil, ErrNoResponse
}

// store opens the current version store, creating it on first use.
func (w *Worker) store(ctx context.Context) (Store, error) {
	return w.config.Registry.Open(ctx, w.config.Version)
}

func (w *Worker) sameOrigin(req Request) bool {
	u, err := url.Parse(req.URL)
	if err != nil {
		return false
	}

	if !u.IsAbs() {
		return true
	}

	if w.origin == nil {
		return false
	}

	return u.Scheme == w.origin.Scheme && u.Host == w.origin.Host
}
