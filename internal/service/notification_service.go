package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/events"
)

// NotificationService records user lifecycle events. The service has no
// outward side effects; it exists so operators can trace admin activity.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleUserCreated)
	n.dispatcher.Subscribe(events.EventUserUpdated, n.handleUserUpdated)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleUserDeleted)
}

func (n *NotificationService) handleUserCreated(_ context.Context, event events.Event) error {
	n.logger.Info("UserCreated", zap.Int64("user_id", event.UserID), zap.String("email", event.Email), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserUpdated(_ context.Context, event events.Event) error {
	n.logger.Info("UserUpdated", zap.Int64("user_id", event.UserID), zap.String("email", event.Email), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("UserDeleted", zap.Int64("user_id", event.UserID), zap.String("email", event.Email))
	return nil
}
