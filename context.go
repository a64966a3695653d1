package offlinecache

import (
	"context"
	"time"
)

type (
	bypassCtxKey struct{}
	ttlCtxKey    struct{}
)

// DefaultTTL indicates default (unlimited ttl) value for entry expiration time.
const DefaultTTL = time.Duration(0)

// WithTTL returns context with entry expiration time for TTL-capable stores.
func WithTTL(ctx context.Context, ttl time.Duration) context.Context {
	return context.WithValue(ctx, ttlCtxKey{}, ttl)
}

// TTL returns entry expiration time or DefaultTTL.
func TTL(ctx context.Context) time.Duration {
	ttl, _ := ctx.Value(ttlCtxKey{}).(time.Duration)
	return ttl
}

// WithBypass returns context with worker interception disabled.
//
// With such context Worker.HandleFetch returns ErrNotHandled so the
// request reaches the network unmodified and is never cached.
func WithBypass(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCtxKey{}, true)
}

// Bypass returns true if worker interception is disabled in context.
func Bypass(ctx context.Context) bool {
	_, ok := ctx.Value(bypassCtxKey{}).(bool)
	return ok
}
