package interfaces

import "context"

// INotificationSink delivers user notifications. It is fire-and-forget: a
// failure is logged by the caller and never undoes a committed transition.
type INotificationSink interface {
	Notify(ctx context.Context, userID string, template string, payload map[string]any) error
}
