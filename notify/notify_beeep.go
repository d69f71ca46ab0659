package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// deliver is replaced in tests.
var deliver = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

type beeepNotifier struct {
	config Config
}

func (n *beeepNotifier) Send(ctx context.Context, notification Notification) error {
	if n.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.config.Timeout)
		defer cancel()
	}

	title := notification.Title
	if n.config.AppName != "" {
		title = n.config.AppName + ": " + title
	}

	send := deliver
	done := make(chan error, 1)
	go func() {
		done <- send(title, notification.Message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotificationFailed, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
	}
}
