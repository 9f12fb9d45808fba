package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// MinimumAge is the youngest age, in whole years, allowed to register.
const MinimumAge = 13

// MinimumPasswordLength applies to password changes.
const MinimumPasswordLength = 6

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidBirthDate   = errors.New("invalid date of birth, use dd-mm-yyyy")
	ErrUnderage           = errors.New("you must be at least 13 years old")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be 6+ characters")
)

// User models an account holder. DateOfBirth uses BirthDateLayout.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DateOfBirth  string    `json:"dob"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
