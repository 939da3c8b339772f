package policy_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/policy"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

func TestAuthorize(t *testing.T) {
	require.NoError(t, policy.Authorize(domain.RoleAdmin))

	err := policy.Authorize(domain.RoleUser)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "FORBIDDEN", domainErr.Code)
	require.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
}

func TestCanDeleteProtectsAdmins(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	err := policy.CanDelete(admin)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "FORBIDDEN", domainErr.Code)
	require.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)

	user := &domain.User{ID: 2, Role: domain.RoleUser}
	require.NoError(t, policy.CanDelete(user))
}

func TestEmailConflictMapsToEmailField(t *testing.T) {
	domainErr := apperrors.ToDomainError(policy.EmailConflict())
	require.Equal(t, "CONFLICT", domainErr.Code)
	require.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	require.Equal(t, "Email already exists", domainErr.Message)
	require.Equal(t, "email", domainErr.Details["field"])
}
