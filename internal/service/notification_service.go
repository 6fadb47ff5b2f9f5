package service

import (
	"context"

	"socialfeed/backend/internal/apperr"
	"socialfeed/backend/internal/models"
	"socialfeed/backend/internal/repository"
)

// NotificationService reads and clears a recipient's notifications. List is a
// pure read; callers that want read-on-fetch follow it with MarkAllRead.
type NotificationService struct {
	store *repository.Store
}

func NewNotificationService(store *repository.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List returns userID's notifications with the actor loaded, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	list, err := s.store.Notifications().ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return list, nil
}

// MarkAllRead flags every notification addressed to userID as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := s.store.Notifications().MarkAllRead(ctx, userID); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

// Clear deletes every notification addressed to userID.
func (s *NotificationService) Clear(ctx context.Context, userID string) error {
	if _, err := s.store.Notifications().DeleteForUser(ctx, userID); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}
