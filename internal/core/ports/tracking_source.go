package ports

import (
	"context"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// TrackingSource fetches the full tracking document for a tracking number.
// It returns domain.ErrTrackingNotFound when the number is unknown.
type TrackingSource interface {
	Get(ctx context.Context, trackingNumber string) (*domain.TrackingInfo, error)
}
