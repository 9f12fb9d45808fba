package ports

import (
	"context"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// RegisterInput carries the sign-up form. DateOfBirth uses dd-MM-yyyy.
type RegisterInput struct {
	Name            string
	Email           string
	DateOfBirth     string
	Password        string
	ConfirmPassword string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email, name, dob string) (*domain.User, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error
}
