package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/repository"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		out = append(out, event.Type)
	}
	return out
}

func newAdminService(t *testing.T) (*service.AdminService, *repository.InMemoryUserRepository, *recordingDispatcher) {
	t.Helper()
	repo := repository.NewInMemoryUserRepository()
	dispatcher := &recordingDispatcher{}
	svc := service.NewAdminService(service.AdminDependencies{
		UserRepo:   repo,
		Dispatcher: dispatcher,
	}, 4)
	return svc, repo, dispatcher
}

func seedUser(t *testing.T, repo *repository.InMemoryUserRepository, name, email string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Gender:       domain.GenderOther,
		Role:         role,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, _, dispatcher := newAdminService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, service.CreateUserInput{
		Name:     "Dhvanil",
		Email:    "dhvanil@example.com",
		Password: "secret123",
		Role:     domain.RoleUser,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotEqual(t, "secret123", created.PasswordHash)
	require.NoError(t, auth.ComparePassword(created.PasswordHash, "secret123"))
	require.Equal(t, domain.GenderOther, created.Gender)
	require.Equal(t, []events.EventType{events.EventUserCreated}, dispatcher.types())
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, repo, dispatcher := newAdminService(t)
	ctx := context.Background()
	seedUser(t, repo, "Existing", "taken@example.com", domain.RoleUser)

	_, err := svc.CreateUser(ctx, service.CreateUserInput{
		Name:     "Other",
		Email:    "taken@example.com",
		Password: "secret123",
		Role:     domain.RoleUser,
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "CONFLICT", domainErr.Code)
	require.Equal(t, "Email already exists", domainErr.Message)

	total, err := repo.CountByRole(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Empty(t, dispatcher.types())
}

func TestUpdateUserRoundTrip(t *testing.T) {
	svc, repo, _ := newAdminService(t)
	ctx := context.Background()
	original := seedUser(t, repo, "Before", "before@example.com", domain.RoleUser)

	updated, err := svc.UpdateUser(ctx, original.ID, service.UpdateUserInput{
		Name:  "After",
		Email: "before@example.com",
		Role:  domain.RoleUser,
	})
	require.NoError(t, err)
	require.Equal(t, "After", updated.Name)

	fetched, err := svc.GetUser(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, "After", fetched.Name)
	require.Equal(t, original.Email, fetched.Email)
	require.Equal(t, original.Gender, fetched.Gender)
	require.Equal(t, original.Role, fetched.Role)
	require.Equal(t, original.PasswordHash, fetched.PasswordHash)
}

func TestUpdateUserEmailCollision(t *testing.T) {
	svc, repo, _ := newAdminService(t)
	ctx := context.Background()
	seedUser(t, repo, "First", "first@example.com", domain.RoleUser)
	second := seedUser(t, repo, "Second", "second@example.com", domain.RoleUser)

	_, err := svc.UpdateUser(ctx, second.ID, service.UpdateUserInput{
		Name:  "Second",
		Email: "first@example.com",
		Role:  domain.RoleUser,
	})
	require.Error(t, err)
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _, _ := newAdminService(t)

	_, err := svc.UpdateUser(context.Background(), 9999, service.UpdateUserInput{
		Name:  "Ghost",
		Email: "ghost@example.com",
		Role:  domain.RoleUser,
	})
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateUserReplacesPasswordWhenSupplied(t *testing.T) {
	svc, repo, _ := newAdminService(t)
	ctx := context.Background()
	user := seedUser(t, repo, "User", "user@example.com", domain.RoleUser)

	newPassword := "changed456"
	updated, err := svc.UpdateUser(ctx, user.ID, service.UpdateUserInput{
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		Password: &newPassword,
	})
	require.NoError(t, err)
	require.NotEqual(t, user.PasswordHash, updated.PasswordHash)
	require.NoError(t, auth.ComparePassword(updated.PasswordHash, newPassword))
}

func TestDeleteUserProtectsAdmins(t *testing.T) {
	svc, repo, dispatcher := newAdminService(t)
	ctx := context.Background()
	admin := seedUser(t, repo, "Admin", "admin@example.com", domain.RoleAdmin)

	// Repeated attempts must stay a no-op.
	for i := 0; i < 2; i++ {
		_, err := svc.DeleteUser(ctx, admin.ID)
		require.Error(t, err)
		require.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
	}

	fetched, err := svc.GetUser(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, admin.Email, fetched.Email)
	require.Empty(t, dispatcher.types())
}

func TestDeleteUserRemovesExactlyOne(t *testing.T) {
	svc, repo, dispatcher := newAdminService(t)
	ctx := context.Background()
	target := seedUser(t, repo, "Target", "target@example.com", domain.RoleUser)
	bystander := seedUser(t, repo, "Bystander", "bystander@example.com", domain.RoleUser)

	deleted, err := svc.DeleteUser(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, target.ID, deleted.ID)
	require.Equal(t, []events.EventType{events.EventUserDeleted}, dispatcher.types())

	_, err = svc.GetUser(ctx, target.ID)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.GetUser(ctx, bystander.ID)
	require.NoError(t, err)

	// Second delete of the same id reports the missing record.
	_, err = svc.DeleteUser(ctx, target.ID)
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListFiltersPartitionTheStore(t *testing.T) {
	svc, repo, _ := newAdminService(t)
	ctx := context.Background()
	seedUser(t, repo, "Admin", "admin@example.com", domain.RoleAdmin)
	seedUser(t, repo, "User A", "a@example.com", domain.RoleUser)
	seedUser(t, repo, "User B", "b@example.com", domain.RoleUser)

	users, err := svc.ListUsers(ctx, domain.FilterUsers)
	require.NoError(t, err)
	admins, err := svc.ListUsers(ctx, domain.FilterAdmins)
	require.NoError(t, err)
	all, err := svc.ListUsers(ctx, domain.FilterAll)
	require.NoError(t, err)

	require.Len(t, all, len(users)+len(admins))

	seen := make(map[int64]bool)
	for _, user := range users {
		require.NotEqual(t, domain.RoleAdmin, user.Role)
		seen[user.ID] = true
	}
	for _, admin := range admins {
		require.Equal(t, domain.RoleAdmin, admin.Role)
		require.False(t, seen[admin.ID], "filters must be disjoint")
		seen[admin.ID] = true
	}
	require.Len(t, seen, len(all))

	usersCount, err := svc.CountUsers(ctx, domain.FilterUsers)
	require.NoError(t, err)
	adminsCount, err := svc.CountUsers(ctx, domain.FilterAdmins)
	require.NoError(t, err)
	allCount, err := svc.CountUsers(ctx, domain.FilterAll)
	require.NoError(t, err)
	require.Equal(t, allCount, usersCount+adminsCount)
}
