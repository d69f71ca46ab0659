// Package notify shows desktop notifications, used to report finished
// downloads.
package notify

import (
	"context"
	"errors"
	"time"
)

// Notification is a message to display.
type Notification struct {
	Title   string
	Message string
}

// Notifier delivers notifications to the desktop.
type Notifier interface {
	// Send displays n. It gives up with ErrTimeout once the configured
	// timeout or ctx expires.
	Send(ctx context.Context, n Notification) error
}

// Config contains notification settings.
type Config struct {
	// AppName prefixes every title.
	AppName string
	// Timeout bounds a single Send. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// DefaultConfig returns the settings used by httpget.
func DefaultConfig() Config {
	return Config{
		AppName: "httpget",
		Timeout: 5 * time.Second,
	}
}

// New creates a Notifier backed by the OS notification service.
func New(config Config) Notifier {
	return &beeepNotifier{config: config}
}

var (
	// ErrNotificationFailed indicates the OS notification service rejected
	// the notification.
	ErrNotificationFailed = errors.New("failed to send notification")
	// ErrTimeout indicates Send gave up before the notification was shown.
	ErrTimeout = errors.New("notification timeout")
)
