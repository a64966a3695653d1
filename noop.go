package offlinecache

import (
	"context"
)

// NoOp is a Store stub.
type NoOp struct{}

var _ Store = NoOp{}

// Read does not find anything.
func (NoOp) Read(ctx context.Context, key string) (*Response, error) {
	return nil, ErrEntryNotFound
}

// Write discards response.
func (NoOp) Write(ctx context.Context, key string, resp *Response) error {
	return nil
}

// NoOpNotifier is a Notifier stub.
type NoOpNotifier struct{}

var _ Notifier = NoOpNotifier{}

// Show discards notification.
func (NoOpNotifier) Show(ctx context.Context, n Notification) error {
	return nil
}

// Close does nothing.
func (NoOpNotifier) Close(ctx context.Context, tag string) error {
	return nil
}

// NoOpWindows is a WindowOpener stub.
type NoOpWindows struct{}

var _ WindowOpener = NoOpWindows{}

// OpenWindow does nothing.
func (NoOpWindows) OpenWindow(ctx context.Context, url string) error {
	return nil
}
