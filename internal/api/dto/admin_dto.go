package dto

import "strings"

// AdminCreateUserRequest payload for POST /admin/user. Role is explicit and
// pointer-typed so that the zero value (ordinary user) still passes required.
type AdminCreateUserRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 *int   `json:"role" validate:"required,oneof=0 1"`
	Gender               string `json:"gender" validate:"omitempty,oneof=male female other"`
}

// Normalize folds case-varying fields before validation.
func (r *AdminCreateUserRequest) Normalize() {
	r.Gender = strings.ToLower(r.Gender)
	r.Email = strings.TrimSpace(r.Email)
}

// AdminUpdateUserRequest payload for PUT /admin/user/:id. Password is
// optional; when present it must be confirmed and long enough.
type AdminUpdateUserRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Role                 *int   `json:"role" validate:"required,oneof=0 1"`
	Password             string `json:"password" validate:"omitempty,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

// Normalize folds case-varying fields before validation.
func (r *AdminUpdateUserRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}
