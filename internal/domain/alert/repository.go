package alert

import (
	"context"

	"prepstock/internal/core/id"
)

// Repository defines the interface for alert persistence.
type Repository interface {
	// Create inserts a new alert.
	Create(ctx context.Context, a *Alert) error

	// ListByOwner retrieves a user's alerts, newest first.
	ListByOwner(ctx context.Context, ownerID id.ID) ([]*Alert, error)

	// MarkRead flags an alert as read.
	MarkRead(ctx context.Context, alertID id.ID) error

	// UnreadCount returns the number of unread alerts for a user.
	UnreadCount(ctx context.Context, ownerID id.ID) (int64, error)

	// HasUnread reports whether an unread alert of the given type already
	// exists for the ingredient (scan dedupe).
	HasUnread(ctx context.Context, ingredientID id.ID, alertType Type) (bool, error)
}
