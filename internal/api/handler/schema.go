package handler

import (
	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/tracking"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	DateOfBirth     string `json:"dob"              validate:"required,birthdate"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type updateProfileRequest struct {
	Name        string `json:"name" validate:"required"`
	DateOfBirth string `json:"dob"  validate:"required,birthdate"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Tracking ---

type trackingResponse struct {
	TrackingNumber  string                   `json:"tracking_number"`
	Status          string                   `json:"status"`
	CurrentStatus   string                   `json:"current_status"`
	LastLocation    string                   `json:"last_location"`
	ETA             string                   `json:"eta"`
	Delivered       bool                     `json:"delivered"`
	Progress        float64                  `json:"progress"`
	ProgressPercent int                      `json:"progress_percent"`
	History         []domain.TrackEvent      `json:"history"`
	Timeline        []tracking.TimelineEntry `json:"timeline"`
	Links           trackingLinks            `json:"_links"`
}

type trackingLinks struct {
	Self  string `json:"self"`
	Saved string `json:"saved"`
}

// --- Saved packages ---

type savePackageRequest struct {
	Name           string `json:"name"            validate:"required,max=100"`
	TrackingNumber string `json:"tracking_number" validate:"required,max=64"`
}

type renamePackageRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type listPackagesRequest struct {
	Query  string `query:"q"      validate:"max=100"`
	Filter string `query:"filter" validate:"omitempty,oneof=all shipped in_transit delivering_soon delivered"`
}

type savedPackageResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	TrackingNumber string            `json:"tracking_number"`
	Status         string            `json:"status"`
	Label          string            `json:"label"`
	ETA            string            `json:"eta"`
	Links          savedPackageLinks `json:"_links"`
}

type savedPackageLinks struct {
	Self     string `json:"self"`
	Tracking string `json:"tracking"`
}

type savedPackageListResponse struct {
	Count int                    `json:"count"`
	Items []savedPackageResponse `json:"items"`
}

type refreshResponse struct {
	Message string `json:"message"`
	Queued  int    `json:"queued"`
}
