package offlinecache_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
	"github.com/stock-finanzas/offlinecache"
)

func ExampleNewWorker() {
	ctx := context.Background()

	// Fake network standing in for the hosting application.
	network := newScriptedFetcher()
	network.respond("/", http.StatusOK, "<html>Stock y Finanzas</html>")

	w, err := offlinecache.NewWorker(offlinecache.Config{
		Origin:  "https://stock.example.com",
		Assets:  []string{"/"},
		Fetcher: network,
		Logger:  &ctxd.LoggerMock{},
		Stats:   &stats.TrackerMock{},
	})
	if err != nil {
		fmt.Println(err)

		return
	}

	// Lifecycle events delivered by the host runtime.
	_, _ = w.Dispatch(ctx, offlinecache.Event{Kind: offlinecache.EventInstall})
	_, _ = w.Dispatch(ctx, offlinecache.Event{Kind: offlinecache.EventActivate})

	// Connectivity is lost, navigation is served from the offline cache.
	network.setOffline(true)

	resp, _ := w.Dispatch(ctx, offlinecache.Event{
		Kind:    offlinecache.EventFetch,
		Request: &offlinecache.Request{Method: http.MethodGet, URL: "/", Navigate: true},
	})
	fmt.Printf("%d %s", resp.Status, resp.Body)

	// Output:
	// 200 <html>Stock y Finanzas</html>
}
