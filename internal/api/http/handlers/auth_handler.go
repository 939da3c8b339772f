package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

// AuthHandler exposes the public /v1 endpoints plus the authenticated
// self-service profile routes.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Test handles GET /v1/test.
func (h *AuthHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Everything is working fine"})
}

// Signup handles POST /v1/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(&req); err != nil {
		return err
	}

	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := h.auth.Signup(c.Context(), req.Name, req.Email, req.Password, gender)
	if err != nil {
		return err
	}

	return Created(c, "User created successfully", fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}

// Login handles POST /v1/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return OK(c, "User login successfully", fiber.Map{
		"token": token,
		"user":  dto.NewUserResponse(user),
		"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Me handles GET /v1/user: the record behind the presented credential.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return OK(c, "Current user fetched successfully", fiber.Map{
		"user": dto.NewUserResponse(principal.User),
	})
}

// UpdateProfile handles PUT /v1/user. Role changes are not part of this
// contract; only admins reassign roles, through the admin routes.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(&req); err != nil {
		return err
	}

	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.User.ID, req.Name, req.Email, gender)
	if err != nil {
		return err
	}

	return OK(c, "Profile updated successfully", fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}
