package ports

import (
	"context"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// Notifier delivers alerts to the user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// KeyLocker serializes work on a single key. The returned func releases the lock.
type KeyLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
