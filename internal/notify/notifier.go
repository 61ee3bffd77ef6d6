// Package notify delivers fire-and-forget notifications for session events.
// Delivery failures are logged and swallowed; they never reach the caller.
package notify

import "context"

// Notifier pushes a human-readable message to a side channel.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Multi fans a message out to every configured channel.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, message string) {
	for _, n := range m {
		n.Notify(ctx, message)
	}
}

// Nop discards everything; used when no channel is configured.
type Nop struct{}

func (Nop) Notify(context.Context, string) {}
