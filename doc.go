// Package offlinecache implements the offline shell of the Stock Finanzas
// web application as a runtime-independent cache worker.
//
// It provides versioned response stores, network-first fetching,
// background sync and push notification handling in plain Go, so hosts
// without a browser runtime can serve the application shell offline.
//
// Features:
//
//   - Versioned response stores with an activation sweep that retires
//     stores of previous versions.
//   - Network-first fetch policy: live responses are served and persisted,
//     cached responses cover network failures, navigations fall back to
//     the cached root document.
//   - Interchangeable store backends: in-memory map, patrickmn/go-cache,
//     puzpuzpuz/xsync and a persistent BadgerDB registry.
//   - Closed event-kind dispatch, testable with fake stores and fakes for
//     the network.
//   - http.RoundTripper integration to put the worker in front of any
//     *http.Client.
//   - Allows logging and stats collection.
package offlinecache
