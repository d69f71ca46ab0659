package notify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func stubDeliver(t *testing.T, fn func(title, message string) error) {
	t.Helper()
	orig := deliver
	deliver = fn
	t.Cleanup(func() { deliver = orig })
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.AppName != "httpget" {
		t.Errorf("expected app name httpget, got %s", config.AppName)
	}
	if config.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", config.Timeout)
	}
}

func TestSend(t *testing.T) {
	var gotTitle, gotMessage string
	stubDeliver(t, func(title, message string) error {
		gotTitle, gotMessage = title, message
		return nil
	})

	n := New(DefaultConfig())
	err := n.Send(context.Background(), Notification{Title: "Download complete", Message: "12 bytes"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotTitle != "httpget: Download complete" {
		t.Errorf("unexpected title %q", gotTitle)
	}
	if gotMessage != "12 bytes" {
		t.Errorf("unexpected message %q", gotMessage)
	}
}

func TestSend_NoAppName(t *testing.T) {
	var gotTitle string
	stubDeliver(t, func(title, message string) error {
		gotTitle = title
		return nil
	})

	n := New(Config{})
	if err := n.Send(context.Background(), Notification{Title: "t"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotTitle != "t" {
		t.Errorf("unexpected title %q", gotTitle)
	}
}

func TestSend_Failure(t *testing.T) {
	stubDeliver(t, func(title, message string) error {
		return errors.New("no dbus")
	})

	err := New(DefaultConfig()).Send(context.Background(), Notification{Title: "t"})
	if !errors.Is(err, ErrNotificationFailed) {
		t.Errorf("expected ErrNotificationFailed, got %v", err)
	}
}

func TestSend_Timeout(t *testing.T) {
	release := make(chan struct{})
	stubDeliver(t, func(title, message string) error {
		<-release
		return nil
	})
	defer close(release)

	n := New(Config{Timeout: 10 * time.Millisecond})
	err := n.Send(context.Background(), Notification{Title: "t"})
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
