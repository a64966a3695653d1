package offlinecache_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stock-finanzas/offlinecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_RoundTrip(t *testing.T) {
	ctx := context.Background()

	var hits int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)

		switch r.URL.Path {
		case "/":
			_, _ = io.WriteString(w, "<html>shell</html>")
		case "/data":
			_, _ = io.WriteString(w, "fresh data")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	fetcher, err := offlinecache.NewHTTPFetcher(srv.URL)
	require.NoError(t, err)

	w, err := offlinecache.NewWorker(offlinecache.Config{
		Origin:  srv.URL,
		Assets:  []string{"/"},
		Fetcher: fetcher,
	})
	require.NoError(t, err)

	require.NoError(t, w.Install(ctx))

	client := &http.Client{Transport: &offlinecache.Transport{Worker: w}}

	// Online: live response, captured on the way through.
	resp, err := client.Get(srv.URL + "/data")
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "fresh data", string(body))

	// Going offline.
	srv.Close()

	// Cached response covers the network failure.
	resp, err = client.Get(srv.URL + "/data")
	require.NoError(t, err)

	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "fresh data", string(body))

	// Offline navigation to a page never cached serves the root document.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/reportes", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err = client.Do(req)
	require.NoError(t, err)

	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "<html>shell</html>", string(body))

	// Offline cache miss on a subresource surfaces as a transport error.
	_, err = client.Get(srv.URL + "/api/productos")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), offlinecache.ErrNoResponse.Error()))
}

func TestTransport_passThrough(t *testing.T) {
	var postHits int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt64(&postHits, 1)
		}

		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	fetcher, err := offlinecache.NewHTTPFetcher(srv.URL)
	require.NoError(t, err)

	w, err := offlinecache.NewWorker(offlinecache.Config{
		Origin:  srv.URL,
		Assets:  []string{},
		Fetcher: fetcher,
	})
	require.NoError(t, err)

	client := &http.Client{Transport: &offlinecache.Transport{Worker: w}}

	// Writes bypass the worker and hit the network directly.
	resp, err := client.Post(srv.URL+"/api/movimientos", "application/json", strings.NewReader(`{"tipo":"entrada"}`))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, int64(1), atomic.LoadInt64(&postHits))
}
