package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded events. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards events with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// ListingRegistered logs and discards the event.
func (n *NoOpNotifier) ListingRegistered(_ context.Context, ev *ListingEvent) error {
	n.log.Debug("notification discarded (no backend configured)",
		"item_id", ev.ItemID,
		"title", ev.Title,
	)
	return nil
}
