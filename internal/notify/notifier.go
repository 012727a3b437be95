// Package notify defines the notification interface and implementations
// for listing event delivery.
package notify

import (
	"context"
)

// ListingEvent contains the data needed to announce a registered listing.
type ListingEvent struct {
	Title       string
	ItemID      string
	ViewItemURL string
	Price       string
	Currency    string
	Fees        []FeeLine
}

// FeeLine is one marketplace fee charged for the registration.
type FeeLine struct {
	Name   string
	Amount string
}

// Notifier defines the interface for announcing listing registrations.
type Notifier interface {
	ListingRegistered(ctx context.Context, ev *ListingEvent) error
}
