package offlinecache

import (
	"context"
	"fmt"
)

// EventKind enumerates the closed set of events a worker handles.
type EventKind int

const (
	// EventInstall precaches the asset manifest into the current store.
	EventInstall EventKind = iota

	// EventActivate retires stores of previous versions.
	EventActivate

	// EventFetch applies the network-first policy to Event.Request.
	EventFetch

	// EventSync delivers a background sync with Event.Tag.
	EventSync

	// EventPush delivers a push message with Event.Payload.
	EventPush

	// EventNotificationClick delivers a notification interaction with Event.Action.
	EventNotificationClick
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case EventInstall:
		return "install"
	case EventActivate:
		return "activate"
	case EventFetch:
		return "fetch"
	case EventSync:
		return "sync"
	case EventPush:
		return "push"
	case EventNotificationClick:
		return "notificationclick"
	default:
		return fmt.Sprintf("eventkind(%d)", int(k))
	}
}

// Event is one runtime-delivered event with its payload.
type Event struct {
	Kind EventKind

	// Request carries the fetch event payload.
	Request *Request

	// Tag carries the sync event payload.
	Tag string

	// Payload carries the push message text.
	Payload []byte

	// Action carries the clicked notification action.
	Action string
}

// Dispatch routes an event to its handler and returns the fetch response
// when there is one.
//
// Dispatch returns after the handler has fully settled, a host awaiting
// it has awaited all worker work for the event.
func (w *Worker) Dispatch(ctx context.Context, e Event) (*Response, error) {
	switch e.Kind {
	case EventInstall:
		return nil, w.Install(ctx)
	case EventActivate:
		return nil, w.Activate(ctx)
	case EventFetch:
		if e.Request == nil {
			return nil, ErrMissingRequest
		}

		return w.HandleFetch(ctx, *e.Request)
	case EventSync:
		return nil, w.Sync(ctx, e.Tag)
	case EventPush:
		return nil, w.Push(ctx, e.Payload)
	case EventNotificationClick:
		return nil, w.NotificationClick(ctx, e.Action)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, e.Kind)
	}
}
