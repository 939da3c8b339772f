package dto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

func fieldErrors(t *testing.T, err error) map[string]any {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	fields, ok := domainErr.Details["fields"].(map[string]any)
	require.True(t, ok, "expected field details, got %+v", domainErr.Details)
	return fields
}

func TestSignupRequestValidation(t *testing.T) {
	valid := dto.SignupRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "secret123",
		Gender:   "female",
	}
	require.NoError(t, dto.Validate(&valid))

	short := valid
	short.Password = "abc"
	fields := fieldErrors(t, dto.Validate(&short))
	require.Contains(t, fields, "password")

	badGender := valid
	badGender.Gender = "robot"
	fields = fieldErrors(t, dto.Validate(&badGender))
	require.Contains(t, fields, "gender")

	badEmail := valid
	badEmail.Email = "not-an-email"
	fields = fieldErrors(t, dto.Validate(&badEmail))
	require.Contains(t, fields, "email")
}

func TestSignupNormalizeFoldsGenderCase(t *testing.T) {
	req := dto.SignupRequest{
		Name:     "Test User",
		Email:    " test@example.com ",
		Password: "secret123",
		Gender:   "Female",
	}
	req.Normalize()
	require.Equal(t, "female", req.Gender)
	require.Equal(t, "test@example.com", req.Email)
	require.NoError(t, dto.Validate(&req))
}

func TestAdminCreateRequiresConfirmation(t *testing.T) {
	role := 0
	req := dto.AdminCreateUserRequest{
		Name:                 "New User",
		Email:                "new@example.com",
		Password:             "secret123",
		PasswordConfirmation: "different",
		Role:                 &role,
	}
	fields := fieldErrors(t, dto.Validate(&req))
	require.Contains(t, fields, "password_confirmation")

	req.PasswordConfirmation = "secret123"
	require.NoError(t, dto.Validate(&req))
}

func TestAdminCreateRoleZeroPassesRequired(t *testing.T) {
	// Role 0 is a legitimate value; only a missing role fails.
	role := 0
	req := dto.AdminCreateUserRequest{
		Name:                 "New User",
		Email:                "new@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 &role,
	}
	require.NoError(t, dto.Validate(&req))

	req.Role = nil
	fields := fieldErrors(t, dto.Validate(&req))
	require.Contains(t, fields, "role")

	invalid := 2
	req.Role = &invalid
	fields = fieldErrors(t, dto.Validate(&req))
	require.Contains(t, fields, "role")
}

func TestAdminUpdatePasswordOptional(t *testing.T) {
	role := 1
	req := dto.AdminUpdateUserRequest{
		Name:  "Edited",
		Email: "edited@example.com",
		Role:  &role,
	}
	require.NoError(t, dto.Validate(&req))

	req.Password = "newsecret"
	fields := fieldErrors(t, dto.Validate(&req))
	require.Contains(t, fields, "password_confirmation")

	req.PasswordConfirmation = "newsecret"
	require.NoError(t, dto.Validate(&req))
}
