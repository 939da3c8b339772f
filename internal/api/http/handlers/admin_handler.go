package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

// AdminHandler exposes the admin CRUD endpoints. Every route behind it is
// already gated by the auth middleware and the admin policy.
type AdminHandler struct {
	admin *service.AdminService
	stats *service.StatsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, statsService *service.StatsService) *AdminHandler {
	return &AdminHandler{admin: adminService, stats: statsService}
}

// Me handles GET /admin/: echoes the acting principal.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return OK(c, "Current admin fetched successfully", fiber.Map{
		"user": dto.NewUserResponse(principal.User),
	})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context(), domain.FilterUsers)
	if err != nil {
		return err
	}
	return OK(c, "All users fetched successfully", fiber.Map{
		"users": dto.NewUserResponses(users),
	})
}

// ListAdmins handles GET /admin/admins.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.admin.ListUsers(c.Context(), domain.FilterAdmins)
	if err != nil {
		return err
	}
	return OK(c, "All admins fetched successfully", fiber.Map{
		"admins": dto.NewUserResponses(admins),
	})
}

// ListAdminsAndUsers handles GET /admin/adminsAndUsers.
func (h *AdminHandler) ListAdminsAndUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context(), domain.FilterAll)
	if err != nil {
		return err
	}
	return OK(c, "All admins and users fetched successfully", fiber.Map{
		"users": dto.NewUserResponses(users),
	})
}

// TotalUsers handles GET /admin/totalUsers.
func (h *AdminHandler) TotalUsers(c *fiber.Ctx) error {
	total, err := h.stats.Count(c.Context(), domain.FilterUsers)
	if err != nil {
		return err
	}
	return OK(c, "Total users counting done perfectly", fiber.Map{
		"totalUsers": total,
	})
}

// TotalAdmins handles GET /admin/totalAdmins.
func (h *AdminHandler) TotalAdmins(c *fiber.Ctx) error {
	total, err := h.stats.Count(c.Context(), domain.FilterAdmins)
	if err != nil {
		return err
	}
	return OK(c, "Total admins counting done perfectly", fiber.Map{
		"totalAdmins": total,
	})
}

// TotalAdminsAndUsers handles GET /admin/totalAdminsAndUsers.
func (h *AdminHandler) TotalAdminsAndUsers(c *fiber.Ctx) error {
	total, err := h.stats.Count(c.Context(), domain.FilterAll)
	if err != nil {
		return err
	}
	return OK(c, "Total admins & users counting done perfectly", fiber.Map{
		"totalAdminsAndUsers": total,
	})
}

// CreateUser handles POST /admin/user.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.AdminCreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(&req); err != nil {
		return err
	}

	role, err := domain.ParseRole(*req.Role)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	input := service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
	if req.Gender != "" {
		gender, err := domain.ParseGender(req.Gender)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		input.Gender = gender
	}

	user, err := h.admin.CreateUser(c.Context(), input)
	if err != nil {
		return err
	}

	return Created(c, "User created successfully", fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}

// UpdateUser handles PUT /admin/user/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(&req); err != nil {
		return err
	}

	role, err := domain.ParseRole(*req.Role)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	input := service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if req.Password != "" {
		input.Password = &req.Password
	}

	user, err := h.admin.UpdateUser(c.Context(), id, input)
	if err != nil {
		return err
	}

	return OK(c, "User updated successfully", fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}

// DeleteUser handles DELETE /admin/user/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.admin.DeleteUser(c.Context(), id)
	if err != nil {
		return err
	}

	return OK(c, "User deleted successfully", fiber.Map{
		"user": dto.NewUserResponse(user),
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid user id", nil)
	}
	return id, nil
}
