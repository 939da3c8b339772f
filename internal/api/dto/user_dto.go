package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// SignupRequest payload for POST /v1/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
}

// Normalize folds case-varying fields before validation. Clients send
// both "Male" and "male" for the same value.
func (r *SignupRequest) Normalize() {
	r.Gender = strings.ToLower(r.Gender)
	r.Email = strings.TrimSpace(r.Email)
}

// LoginRequest payload for POST /v1/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest payload for PUT /v1/user. Role is absent on purpose:
// self-service updates cannot change it.
type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Email  string `json:"email" validate:"required,email"`
	Gender string `json:"gender" validate:"required,oneof=male female other"`
}

// Normalize folds case-varying fields before validation.
func (r *UpdateProfileRequest) Normalize() {
	r.Gender = strings.ToLower(r.Gender)
	r.Email = strings.TrimSpace(r.Email)
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the read representation of an account. The password hash
// is never part of it.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	Role      int       `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain record to its wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Gender:    string(user.Gender),
		Role:      int(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses maps a list of records.
func NewUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
