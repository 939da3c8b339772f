package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/policy"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

// RequireAdmin gates a route group behind the admin policy. Denials
// short-circuit before any handler logic runs.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := policy.Authorize(principal.Role()); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller carries a valid credential.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
