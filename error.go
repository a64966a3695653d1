package offlinecache

// SentinelError is an error.
type SentinelError string

const (
	// ErrEntryNotFound indicates missing cache entry.
	ErrEntryNotFound = SentinelError("missing cache entry")

	// ErrNotHandled indicates a request the worker does not intercept,
	// the host must forward it to the network unmodified.
	ErrNotHandled = SentinelError("request not handled by worker")

	// ErrNoResponse indicates a failed network request with no cached
	// response to fall back to.
	ErrNoResponse = SentinelError("no cached response")

	// ErrStoreClosed indicates a store that was closed and deactivated.
	ErrStoreClosed = SentinelError("cache store is closed")

	// ErrUnexpectedStatus indicates a precache fetch that completed with
	// a non-success status.
	ErrUnexpectedStatus = SentinelError("unexpected asset status")

	// ErrUnknownEvent indicates an event kind outside the closed set.
	ErrUnknownEvent = SentinelError("unknown event kind")

	// ErrMissingRequest indicates a fetch event without a request payload.
	ErrMissingRequest = SentinelError("fetch event without request")

	// ErrNothingToInvalidate indicates no callbacks were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
