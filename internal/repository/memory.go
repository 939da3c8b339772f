package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// InMemoryUserRepository is a map-backed UserRepository used by tests and by
// local runs without a database. Absent records surface as pgx.ErrNoRows,
// matching the Postgres implementation.
type InMemoryUserRepository struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]domain.User
}

// NewInMemoryUserRepository builds an empty in-memory store.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[int64]domain.User)}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := time.Now()
	user.ID = r.seq
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	updated := *user
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.users[user.ID] = updated

	out := updated
	return &out, nil
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := user
	return &out, nil
}

func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func matchesFilter(user domain.User, filter domain.RoleFilter) bool {
	switch filter {
	case domain.FilterUsers:
		return user.Role != domain.RoleAdmin
	case domain.FilterAdmins:
		return user.Role != domain.RoleUser
	default:
		return true
	}
}

func (r *InMemoryUserRepository) ListByRole(_ context.Context, filter domain.RoleFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		if matchesFilter(user, filter) {
			out := user
			users = append(users, &out)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *InMemoryUserRepository) CountByRole(_ context.Context, filter domain.RoleFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, user := range r.users {
		if matchesFilter(user, filter) {
			total++
		}
	}
	return total, nil
}

func (r *InMemoryUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}
