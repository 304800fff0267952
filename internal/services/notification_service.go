package services

import (
	"context"
	"errors"

	"gcore-rewards-backend/internal/models"

	"gorm.io/gorm"
)

const notificationFeedSize = 50

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

type NotificationFeed struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}

// notify writes a notification on db, which may be an open transaction.
func notify(db *gorm.DB, userID string, kind models.NotificationType, title, message, link string) error {
	return db.Create(&models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
		Link:    link,
	}).Error
}

func (s *NotificationService) Create(ctx context.Context, userID string, kind models.NotificationType, title, message, link string) error {
	return notify(s.db.WithContext(ctx), userID, kind, title, message, link)
}

// List returns the newest notifications for a user plus the unread total.
func (s *NotificationService) List(ctx context.Context, userID string) (*NotificationFeed, error) {
	db := s.db.WithContext(ctx)
	feed := &NotificationFeed{Notifications: []models.Notification{}}

	if err := db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(notificationFeedSize).
		Find(&feed.Notifications).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&feed.UnreadCount).Error; err != nil {
		return nil, err
	}
	return feed, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrNotificationForbidden
	}

	if err := s.db.WithContext(ctx).Model(&n).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
