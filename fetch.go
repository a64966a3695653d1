package offlinecache

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/bool64/ctxd"
)

// Fetcher performs network requests on behalf of the worker.
//
// A nil error with a non-2xx status is a completed network exchange, an
// error means the network itself failed (offline, timeout, DNS).
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Response, error)
}

// HTTPFetcher is a Fetcher on net/http.
type HTTPFetcher struct {
	// Client is used for outgoing requests, http.DefaultClient if nil.
	Client *http.Client

	base *url.URL
}

var _ Fetcher = &HTTPFetcher{}

// NewHTTPFetcher creates a Fetcher resolving origin-relative URLs
// against the given base, for example "https://stock.example.com".
func NewHTTPFetcher(base string) (*HTTPFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, ctxd.WrapError(context.Background(), err, "failed to parse base URL", "base", base)
	}

	return &HTTPFetcher{base: u}, nil
}

// Fetch performs the request and buffers the full response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) (*Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to parse request URL", "url", req.URL)
	}

	if !u.IsAbs() && f.base != nil {
		u = f.base.ResolveReference(u)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, u.String(), nil)
	if err != nil {
		return nil, ctxd.WrapError(ctx, err, "failed to build request", "url", req.URL)
	}

	for k, vv := range req.Header {
		for _, v := range vv {
			hr.Header.Add(k, v)
		}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(hr)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}
