package offlinecache

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Transport is an http.RoundTripper applying the worker policy to a
// client, the Go analogue of a page controlled by the worker.
//
// The worker's own Fetcher must not route through a client using this
// transport, that would loop interception back into itself.
type Transport struct {
	// Worker handles intercepted requests.
	Worker *Worker

	// Base serves requests the worker does not intercept,
	// http.DefaultTransport if nil.
	Base http.RoundTripper
}

var _ http.RoundTripper = &Transport{}

// RoundTrip implements http.RoundTripper.
//
// ErrNoResponse surfaces as a transport error, matching the network
// error a page sees on an offline cache miss.
func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := t.Worker.HandleFetch(r.Context(), requestFromHTTP(r))
	if errors.Is(err, ErrNotHandled) {
		return t.base().RoundTrip(r)
	}

	if err != nil {
		return nil, err
	}

	return httpResponse(resp, r), nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}

	return http.DefaultTransport
}

// requestFromHTTP converts an *http.Request, detecting navigations from
// fetch metadata or, failing that, from the Accept header.
func requestFromHTTP(r *http.Request) Request {
	navigate := r.Header.Get("Sec-Fetch-Mode") == "navigate"
	if !navigate && r.Header.Get("Sec-Fetch-Mode") == "" {
		navigate = strings.Contains(r.Header.Get("Accept"), "text/html")
	}

	return Request{
		Method:   r.Method,
		URL:      r.URL.String(),
		Header:   r.Header.Clone(),
		Navigate: navigate,
	}
}

// httpResponse rebuilds a captured response for the standard client.
func httpResponse(resp *Response, r *http.Request) *http.Response {
	header := resp.Header
	if header == nil {
		header = http.Header{}
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", resp.Status, http.StatusText(resp.Status)),
		StatusCode:    resp.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(resp.Body)),
		ContentLength: int64(len(resp.Body)),
		Request:       r,
	}
}
