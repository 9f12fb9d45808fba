package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
)

// AuthService implements registration, login and profile management.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	today     Today
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, today Today) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if today == nil {
		today = SystemToday(time.UTC)
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, today: today}
}

// Register creates a user account. Self-registered accounts always get the
// user role; admins are granted with `tracker grant-admin`.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.checkBirthDate(in.DateOfBirth); err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		DateOfBirth:  in.DateOfBirth,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

// UpdateProfile changes the display name and date of birth; the same
// birth date rules as registration apply.
func (s *AuthService) UpdateProfile(ctx context.Context, email, name, dob string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.checkBirthDate(dob); err != nil {
		return nil, err
	}
	return s.repo.UpdateProfile(ctx, normalizeEmail(email), strings.TrimSpace(name), dob)
}

func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrInvalidCredentials
	}
	if len(newPassword) < domain.MinimumPasswordLength {
		return domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, user.Email, string(hash))
}

func (s *AuthService) checkBirthDate(dob string) error {
	born, ok := domain.ParseBirthDate(dob)
	if !ok {
		return domain.ErrInvalidBirthDate
	}
	if born.YearsUntil(s.today()) < domain.MinimumAge {
		return domain.ErrUnderage
	}
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
