// Package policy decides whether a principal may perform an administrative
// operation on a target record. Every admin endpoint consults it before
// touching the store; a denial produces no side effects.
package policy

import (
	"github.com/spec-kit/user-admin-service/internal/domain"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

// Authorize grants administrative access to admin principals only.
func Authorize(role domain.Role) error {
	if !role.IsAdmin() {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// CanDelete denies deletion of admin records regardless of who is asking.
// Admin accounts are immutable-by-deletion through this API.
func CanDelete(target *domain.User) error {
	if target.Role.IsAdmin() {
		return apperrors.NewForbidden("you are not allowed to delete this user")
	}
	return nil
}

// EmailConflict builds the distinct error surfaced when a create or an
// email-changing update collides with an existing record, so the client can
// attach it to the email field.
func EmailConflict() error {
	return apperrors.NewConflict("Email already exists", map[string]any{"field": "email"})
}
