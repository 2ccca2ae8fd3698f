package notification

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/pkg/user"
)

type Service interface {
	// NotifyUser stores a notification for an explicit user. Used by batch
	// paths where no user is attached to the context.
	NotifyUser(ctx context.Context, userId int, notification Notification) error
	GetAll(ctx context.Context, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, notificationId int) error
	MarkAllRead(ctx context.Context) error
	UnreadCount(ctx context.Context) (int, error)
	Delete(ctx context.Context, notificationId int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) NotifyUser(ctx context.Context, userId int, notification Notification) error {
	if _, err := s.repo.Store(ctx, userId, notification); err != nil {
		return fmt.Errorf("storing notification for user %d: %w", userId, err)
	}
	return nil
}

func (s *ServiceImpl) GetAll(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId, unreadOnly)
}

func (s *ServiceImpl) MarkRead(ctx context.Context, notificationId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	marked, err := s.repo.MarkRead(ctx, userId, notificationId)
	if err != nil {
		return fmt.Errorf("marking notification %d as read: %w", notificationId, err)
	}
	if !marked {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *ServiceImpl) MarkAllRead(ctx context.Context) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	return s.repo.MarkAllRead(ctx, userId)
}

func (s *ServiceImpl) UnreadCount(ctx context.Context) (int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.UnreadCount(ctx, userId)
}

func (s *ServiceImpl) Delete(ctx context.Context, notificationId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, notificationId)
	if err != nil {
		return fmt.Errorf("deleting notification %d: %w", notificationId, err)
	}
	if !deleted {
		return ErrNotificationNotFound
	}
	return nil
}
