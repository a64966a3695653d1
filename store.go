package offlinecache

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request identifies one outgoing request observed by the worker.
//
// URL may be origin-relative ("/dashboard") or absolute. Navigate marks
// requests that load a full page rather than a subresource.
type Request struct {
	Method   string
	URL      string
	Header   http.Header
	Navigate bool
}

// Key returns the cache key of the request: method plus URL, with
// same-origin URLs reduced to their path and query so that a request
// produces the same key whether it was expressed relative or absolute.
func (r Request) Key(origin *url.URL) string {
	u := r.URL

	if origin != nil {
		if parsed, err := url.Parse(u); err == nil && parsed.IsAbs() &&
			parsed.Scheme == origin.Scheme && parsed.Host == origin.Host {
			u = parsed.RequestURI()
		}
	}

	if u == "" || (!strings.Contains(u, "://") && !strings.HasPrefix(u, "/")) {
		u = "/" + u
	}

	return r.Method + " " + u
}

// Response is a captured response. Body is fully buffered so that the
// same response replays byte-identical from any store.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports whether the status is a success status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Clone returns a deep copy, detaching header and body from the original.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}

	c := &Response{Status: r.Status}

	if r.Header != nil {
		c.Header = r.Header.Clone()
	}

	if r.Body != nil {
		c.Body = make([]byte, len(r.Body))
		copy(c.Body, r.Body)
	}

	return c
}

// Reader reads captured responses from a store.
type Reader interface {
	// Read returns the cached response or ErrEntryNotFound.
	Read(ctx context.Context, key string) (*Response, error)
}

// Writer writes captured responses to a store.
type Writer interface {
	// Write stores a response under the given key.
	Write(ctx context.Context, key string, resp *Response) error
}

// Store reads and writes captured responses.
type Store interface {
	Reader
	Writer
}

// Walker calls function for every entry in a store and fails on first
// error returned by that function.
//
// Count of processed entries is returned.
type Walker interface {
	Walk(func(key string, resp *Response) error) (int, error)
}

// Dumper dumps store entries in binary format.
type Dumper interface {
	Dump(w io.Writer) (int, error)
}

// Restorer restores store entries from binary dump.
type Restorer interface {
	Restore(r io.Reader) (int, error)
}

// Registry manages named stores, one per worker version.
//
// It mirrors the browser cache storage contract: Open creates on first
// use, Names enumerates existing stores, Delete removes a store and its
// entries. Deleting an unknown name is not an error.
type Registry interface {
	Open(ctx context.Context, name string) (Store, error)
	Names(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}
