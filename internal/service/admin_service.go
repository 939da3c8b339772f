package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/policy"
	"github.com/spec-kit/user-admin-service/internal/repository"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

// AdminService implements the administrative CRUD operations over accounts.
// Callers reach it only through routes already gated by the admin policy.
type AdminService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// AdminDependencies bundles what the admin service needs.
type AdminDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies, bcryptCost int) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: bcryptCost,
	}
}

// CreateUserInput carries validated fields for an admin-created account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Gender   domain.Gender
	Role     domain.Role
}

// UpdateUserInput carries validated fields for an admin update. A nil
// Password leaves the stored hash untouched.
type UpdateUserInput struct {
	Name     string
	Email    string
	Role     domain.Role
	Password *string
}

// ListUsers returns the full set matching the role filter, in id order.
func (s *AdminService) ListUsers(ctx context.Context, filter domain.RoleFilter) ([]*domain.User, error) {
	return s.users.ListByRole(ctx, filter)
}

// CountUsers returns the number of records matching the role filter.
func (s *AdminService) CountUsers(ctx context.Context, filter domain.RoleFilter) (int64, error) {
	return s.users.CountByRole(ctx, filter)
}

// GetUser fetches a single record by id.
func (s *AdminService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new account with an explicit role.
func (s *AdminService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, policy.EmailConflict()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	gender := input.Gender
	if gender == "" {
		gender = domain.GenderOther
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Gender:       gender,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserCreated, user, map[string]any{"role": int(user.Role)})
	return user, nil
}

// UpdateUser overwrites name, email and role, plus the password hash when a
// new password is supplied. The update is built as a fresh value and handed
// to the repository, which returns the persisted result.
func (s *AdminService) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	if input.Email != current.Email {
		if other, err := s.users.GetByEmail(ctx, input.Email); err == nil && other.ID != id {
			return nil, policy.EmailConflict()
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	updated := *current
	updated.Name = input.Name
	updated.Email = input.Email
	updated.Role = input.Role
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	saved, err := s.users.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserUpdated, saved, map[string]any{"role": int(saved.Role)})
	return saved, nil
}

// DeleteUser removes a record permanently. Admin targets are protected by
// policy before the store is touched; the check is independent of the caller.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) (*domain.User, error) {
	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	if err := policy.CanDelete(target); err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserDeleted, target, nil)
	return target, nil
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, user *domain.User, payload map[string]any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, user.ID, user.Email, payload))
}
