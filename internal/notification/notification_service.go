package notification

import (
	"context"
	"time"

	"go-worksuite/internal/access"
	notificationerrors "go-worksuite/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Notify is called by the event consumer, not by request handlers.
	Notify(ctx context.Context, userID uuid.UUID, notifType, title, body string) error

	GetAll(ctx context.Context, caller access.Caller, unreadOnly bool) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, caller access.Caller) (int64, error)
	MarkRead(ctx context.Context, caller access.Caller, id string) error
	MarkAllRead(ctx context.Context, caller access.Caller) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, notifType, title, body string) error {
	n := &Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("notify failed",
			zap.String("user_id", userID.String()),
			zap.String("type", notifType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, caller access.Caller, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindAllByUser(ctx, caller.ID.String(), unreadOnly)
	if err != nil {
		return nil, err
	}
	return lo.Map(notifications, func(n Notification, _ int) NotificationResponse {
		return mapToResponse(n)
	}), nil
}

func (s *service) UnreadCount(ctx context.Context, caller access.Caller) (int64, error) {
	return s.repo.CountUnread(ctx, caller.ID.String())
}

func (s *service) MarkRead(ctx context.Context, caller access.Caller, id string) error {
	affected, err := s.repo.MarkRead(ctx, id, caller.ID.String(), time.Now().UTC())
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, caller access.Caller) (int64, error) {
	return s.repo.MarkAllRead(ctx, caller.ID.String(), time.Now().UTC())
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
