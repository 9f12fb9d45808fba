package ports

import (
	"context"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// AuthRepository defines the interface for account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateProfile sets name and date of birth for the account owning email.
	UpdateProfile(ctx context.Context, email, name, dob string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, email, hash string) error
}
