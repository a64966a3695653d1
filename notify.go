package offlinecache

import (
	"context"

	"github.com/bool64/ctxd"
)

// Notification surface constants of the Stock Finanzas shell.
const (
	NotificationTitle = "Stock y Finanzas"
	NotificationTag   = "stock-finanzas"
	NotificationIcon  = "/static/icons/icon-192x192.png"
	NotificationBadge = "/static/icons/icon-72x72.png"

	// DefaultPushBody is used when a push message carries no payload.
	DefaultPushBody = "Nueva notificación de Stock y Finanzas"

	// ActionOpen opens the application window, ActionClose only dismisses.
	ActionOpen  = "open"
	ActionClose = "close"
)

// NotificationAction is one button on a displayed notification.
type NotificationAction struct {
	Action string
	Title  string
}

// Notification is built fresh per push event and never stored.
type Notification struct {
	Title   string
	Body    string
	Icon    string
	Badge   string
	Vibrate []int
	Tag     string
	Actions []NotificationAction
}

// Notifier displays notifications on the platform surface.
type Notifier interface {
	Show(ctx context.Context, n Notification) error
	Close(ctx context.Context, tag string) error
}

// WindowOpener opens or focuses an application window.
type WindowOpener interface {
	OpenWindow(ctx context.Context, url string) error
}

// Push handles an incoming push message. Payload text becomes the
// notification body verbatim, an empty payload uses DefaultPushBody.
func (w *Worker) Push(ctx context.Context, payload []byte) error {
	body := string(payload)
	if body == "" {
		body = DefaultPushBody
	}

	n := Notification{
		Title:   NotificationTitle,
		Body:    body,
		Icon:    NotificationIcon,
		Badge:   NotificationBadge,
		Vibrate: []int{100, 50, 100},
		Tag:     NotificationTag,
		Actions: []NotificationAction{
			{Action: ActionOpen, Title: "Abrir"},
			{Action: ActionClose, Title: "Cerrar"},
		},
	}

	if err := w.config.Notifier.Show(ctx, n); err != nil {
		return ctxd.WrapError(ctx, err, "failed to show notification", "tag", n.Tag)
	}

	w.log.Debug(ctx, "displayed notification", "tag", n.Tag, "body", body)
	w.stat.Add(ctx, MetricPush, 1, "version", w.config.Version)

	return nil
}

// NotificationClick handles user interaction with a displayed
// notification. The notification is closed, ActionOpen additionally
// opens or focuses a window at the root path.
func (w *Worker) NotificationClick(ctx context.Context, action string) error {
	if err := w.config.Notifier.Close(ctx, NotificationTag); err != nil {
		return ctxd.WrapError(ctx, err, "failed to close notification", "tag", NotificationTag)
	}

	if action != ActionOpen {
		return nil
	}

	if err := w.config.Windows.OpenWindow(ctx, "/"); err != nil {
		return ctxd.WrapError(ctx, err, "failed to open window")
	}

	return nil
}
