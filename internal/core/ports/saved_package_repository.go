package ports

import (
	"context"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// SavedPackageRepository is the local table of bookmarked packages.
// Lookups by tracking number return domain.ErrSavedPackageNotFound when
// no row matches.
type SavedPackageRepository interface {
	// Insert stores pkg and returns the stored row. Saving a tracking number
	// that already exists only renames it: id, status and eta are kept so the
	// notification engine still sees the old baseline.
	Insert(ctx context.Context, pkg domain.SavedPackage) (domain.SavedPackage, error)
	Delete(ctx context.Context, pkg domain.SavedPackage) error
	GetAll(ctx context.Context) ([]domain.SavedPackage, error)
	// Watch emits the full list immediately and again after every change
	// until ctx is cancelled, at which point the channel is closed.
	Watch(ctx context.Context) (<-chan []domain.SavedPackage, error)
	GetByStatus(ctx context.Context, status string) ([]domain.SavedPackage, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.SavedPackage, error)
	UpdateStatus(ctx context.Context, trackingNumber, status string) error
	UpdateName(ctx context.Context, trackingNumber, name string) error
}
