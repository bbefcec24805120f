package notifications

import (
	"context"

	"landeed-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// EmitInput describes one notification to record.
type EmitInput struct {
	UserID     uuid.UUID
	Title      string
	Message    string
	Type       string
	PropertyID *uuid.UUID
}

// Emit creates a durable unread notification. It never blocks on delivery;
// users fetch their own notifications.
func (s *Service) Emit(ctx context.Context, in EmitInput) (*models.Notification, error) {
	n := &models.Notification{
		UserID:     in.UserID,
		Title:      in.Title,
		Message:    in.Message,
		Type:       in.Type,
		PropertyID: in.PropertyID,
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListForEmail resolves the user by email and returns their notifications.
func (s *Service) ListForEmail(ctx context.Context, email string) ([]models.Notification, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.ListForUser(ctx, user.UserID)
}

// MarkRead flips the read flag. Idempotent: marking a read notification
// again succeeds without change.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("notification_id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
