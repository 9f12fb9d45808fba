package ports

import (
	"context"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/tracking"
)

// TrackingView is the derived view of one tracking number.
type TrackingView struct {
	Info            domain.TrackingInfo
	CurrentStatus   string
	Progress        float64
	ProgressPercent int
	Delivered       bool
	Timeline        []tracking.TimelineEntry
}

// TrackingService fetches tracking documents and keeps saved packages in sync.
type TrackingService interface {
	Track(ctx context.Context, trackingNumber string) (*TrackingView, error)
	// Refresh re-fetches a tracking number and runs the notification engine
	// without building a view.
	Refresh(ctx context.Context, trackingNumber string) error
}

// SyncResult reports what the notification engine did for one fetch.
type SyncResult struct {
	Baseline      tracking.Baseline
	StatusChanged bool
	Notifications []domain.Notification
}

// StatusSyncer runs the notification engine for a freshly fetched status.
type StatusSyncer interface {
	Sync(ctx context.Context, trackingNumber, newStatus string) (*SyncResult, error)
}
