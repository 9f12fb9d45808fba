package ports

import (
	"context"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/tracking"
)

// SavedPackageItem is a saved package with its display label.
type SavedPackageItem struct {
	domain.SavedPackage
	Label string
}

// ListSavedInput carries the search box and the filter chip.
type ListSavedInput struct {
	Query  string
	Filter tracking.Filter
}

// SavedPackageService manages bookmarked packages.
type SavedPackageService interface {
	Save(ctx context.Context, name, trackingNumber string) (*SavedPackageItem, error)
	Get(ctx context.Context, trackingNumber string) (*SavedPackageItem, error)
	List(ctx context.Context, in ListSavedInput) ([]SavedPackageItem, error)
	Rename(ctx context.Context, trackingNumber, name string) (*SavedPackageItem, error)
	Remove(ctx context.Context, trackingNumber string) error
	Analytics(ctx context.Context) (tracking.Summary, error)
	DueSoon(ctx context.Context) ([]SavedPackageItem, error)
	// Stream emits labelled snapshots of the saved list on every change.
	Stream(ctx context.Context) (<-chan []SavedPackageItem, error)
}
