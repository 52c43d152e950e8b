package services

import (
	"context"
	"log/slog"

	"grochain-dashboard/internal/models"
)

type Notifications struct {
	api    NotificationAPI
	logger *slog.Logger
}

func NewNotifications(api NotificationAPI, logger *slog.Logger) *Notifications {
	return &Notifications{api: api, logger: logger}
}

func (s *Notifications) Status(ctx context.Context) (models.WebsocketStatus, error) {
	return s.api.WebsocketStatus(ctx)
}

func (s *Notifications) Notify(ctx context.Context, n models.Notification) (models.NotificationResult, error) {
	if n.Type == "" {
		n.Type = "info"
	}
	if err := validateForm(n); err != nil {
		return models.NotificationResult{}, err
	}
	res, err := s.api.NotifyUser(ctx, n)
	if err != nil {
		return models.NotificationResult{}, err
	}
	s.logger.InfoContext(ctx, "notification sent", "user_id", n.UserID, "delivered", res.Delivered)
	return res, nil
}
