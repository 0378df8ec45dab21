package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/infrastructure/logger"
	"github.com/taskmaster/taskflow/internal/ports"
)

const entityNotification = "notification"

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo ports.NotificationRepository
	rt               *Runtime
	logger           *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo ports.NotificationRepository, rt *Runtime) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		rt:               rt,
		logger:           rt.logger.WithComponent("notification_service"),
	}
}

// ListNotifications returns all notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context) ([]*entities.Notification, error) {
	return observe(s.rt, entityNotification, "list", s.rt.latency.NotificationList, func() ([]*entities.Notification, error) {
		list, err := s.notificationRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list notifications: %w", err)
		}
		return list, nil
	})
}

// ListNotificationsByType returns notifications of one type, newest first
func (s *NotificationService) ListNotificationsByType(ctx context.Context, nt entities.NotificationType) ([]*entities.Notification, error) {
	return observe(s.rt, entityNotification, "list_by_type", s.rt.latency.NotificationList, func() ([]*entities.Notification, error) {
		if err := checkNotificationType(nt); err != nil {
			return nil, err
		}
		list, err := s.notificationRepo.ListByType(ctx, nt)
		if err != nil {
			return nil, fmt.Errorf("failed to list notifications: %w", err)
		}
		return list, nil
	})
}

// GetNotification retrieves a notification by ID
func (s *NotificationService) GetNotification(ctx context.Context, id string) (*entities.Notification, error) {
	return observe(s.rt, entityNotification, "get", s.rt.latency.Get, func() (*entities.Notification, error) {
		n, err := s.notificationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get notification: %w", err)
		}
		return n, nil
	})
}

// UnreadCount returns the number of unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	return observe(s.rt, entityNotification, "unread_count", s.rt.latency.Count, func() (int, error) {
		count, err := s.notificationRepo.CountUnread(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count unread notifications: %w", err)
		}
		return count, nil
	})
}

// MarkAsRead marks one notification read. Marking an already read
// notification keeps its original read time.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (*entities.Notification, error) {
	return observe(s.rt, entityNotification, "mark_read", s.rt.latency.Update, func() (*entities.Notification, error) {
		n, err := s.notificationRepo.MarkRead(ctx, id, s.rt.now())
		if err != nil {
			return nil, fmt.Errorf("failed to mark notification as read: %w", err)
		}
		return n, nil
	})
}

// MarkAllAsRead marks every notification read and returns them
func (s *NotificationService) MarkAllAsRead(ctx context.Context) ([]*entities.Notification, error) {
	return observe(s.rt, entityNotification, "mark_all_read", s.rt.latency.Bulk, func() ([]*entities.Notification, error) {
		read, err := s.notificationRepo.MarkAllRead(ctx, s.rt.now())
		if err != nil {
			return nil, fmt.Errorf("failed to mark notifications as read: %w", err)
		}

		s.logger.Infow("Notifications marked as read", "count", len(read))
		return read, nil
	})
}

// CreateNotification stores a new unread notification. Type defaults to other.
func (s *NotificationService) CreateNotification(ctx context.Context, req ports.CreateNotificationRequest) (*entities.Notification, error) {
	return observe(s.rt, entityNotification, "create", s.rt.latency.NotificationCreate, func() (*entities.Notification, error) {
		if err := s.rt.check(req); err != nil {
			return nil, err
		}
		if err := requireText("message", req.Message); err != nil {
			return nil, err
		}

		n := entities.Notification{
			Type:      req.Type,
			Message:   strings.TrimSpace(req.Message),
			Details:   req.Details,
			TaskID:    req.TaskID,
			ProjectID: req.ProjectID,
		}
		if n.Type == "" {
			n.Type = entities.NotificationTypeOther
		}
		if err := checkNotificationType(n.Type); err != nil {
			return nil, err
		}

		created, err := s.notificationRepo.Create(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("failed to create notification: %w", err)
		}

		s.logger.Infow("Notification created successfully", "notification_id", created.ID, "type", created.Type)
		return created, nil
	})
}

// DeleteNotification removes a notification and returns it
func (s *NotificationService) DeleteNotification(ctx context.Context, id string) (*entities.Notification, error) {
	return observe(s.rt, entityNotification, "delete", s.rt.latency.Delete, func() (*entities.Notification, error) {
		removed, err := s.notificationRepo.Delete(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to delete notification: %w", err)
		}

		s.logger.Infow("Notification deleted successfully", "notification_id", id)
		return removed, nil
	})
}

// ClearAll removes every notification and returns what was removed
func (s *NotificationService) ClearAll(ctx context.Context) ([]*entities.Notification, error) {
	return observe(s.rt, entityNotification, "clear_all", s.rt.latency.Bulk, func() ([]*entities.Notification, error) {
		cleared, err := s.notificationRepo.Clear(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to clear notifications: %w", err)
		}

		s.logger.Infow("Notifications cleared", "count", len(cleared))
		return cleared, nil
	})
}
