// Package notify delivers reminder notifications to owners.
// The scheduler depends only on the Notifier contract; transports are
// pluggable behind it.
package notify

import (
	"context"

	"github.com/kihana2077/countdown/internal/logging"
	"github.com/kihana2077/countdown/internal/model"
)

// Notifier delivers a notification to an owner.
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, n *model.Notification) error

// Notify calls f.
func (f Func) Notify(ctx context.Context, n *model.Notification) error {
	return f(ctx, n)
}

// LogNotifier writes notifications to the structured log instead of
// delivering them. Used when no delivery channel is configured.
type LogNotifier struct{}

// Notify logs the notification.
func (LogNotifier) Notify(_ context.Context, n *model.Notification) error {
	logging.Info("reminder",
		logging.KeyOwner, n.OwnerKey,
		"title", n.Title,
		"message", n.Message,
	)
	return nil
}
