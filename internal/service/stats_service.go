package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/repository"
)

// StatsService serves the dashboard role counts through a Redis cache.
// The cache is best effort: any Redis failure falls through to the store.
type StatsService struct {
	users  repository.UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsService builds the service. A nil client disables caching.
func NewStatsService(users repository.UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsService {
	return &StatsService{users: users, client: client, ttl: ttl, logger: logger}
}

func cacheKey(filter domain.RoleFilter) string {
	switch filter {
	case domain.FilterUsers:
		return "stats:totalUsers"
	case domain.FilterAdmins:
		return "stats:totalAdmins"
	default:
		return "stats:totalAdminsAndUsers"
	}
}

// Count returns the number of records matching the filter, cached with TTL.
func (s *StatsService) Count(ctx context.Context, filter domain.RoleFilter) (int64, error) {
	key := cacheKey(filter)

	if s.client != nil {
		cached, err := s.client.Get(ctx, key).Result()
		if err == nil {
			if total, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return total, nil
			}
		} else if err != redis.Nil {
			s.logger.Debug("stats cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	total, err := s.users.CountByRole(ctx, filter)
	if err != nil {
		return 0, err
	}

	if s.client != nil && s.ttl > 0 {
		if err := s.client.Set(ctx, key, strconv.FormatInt(total, 10), s.ttl).Err(); err != nil {
			s.logger.Debug("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return total, nil
}

// Invalidate drops all cached counts.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.client == nil {
		return
	}
	keys := []string{
		cacheKey(domain.FilterUsers),
		cacheKey(domain.FilterAdmins),
		cacheKey(domain.FilterAll),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Debug("stats cache invalidation failed", zap.Error(err))
	}
}

// RegisterInvalidation drops the cache after every successful mutation.
func (s *StatsService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	handler := func(ctx context.Context, _ events.Event) error {
		s.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventUserCreated, handler)
	dispatcher.Subscribe(events.EventUserUpdated, handler)
	dispatcher.Subscribe(events.EventUserDeleted, handler)
}
