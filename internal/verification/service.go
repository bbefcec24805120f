package verification

import (
	"context"
	"fmt"
	"time"

	"landeed-backend/internal/emails"
	"landeed-backend/internal/models"
	"landeed-backend/internal/notifications"
	"landeed-backend/internal/tasks"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service is the verification state machine: pending -> verified | rejected.
// A decision is a one-way gate; re-review requires the owner to edit the
// listing, which resets it to pending.
type Service struct {
	DB            *gorm.DB
	Notifications *notifications.Service
	Emails        emails.Sender
	Tasks         *tasks.Runner
}

// Approve moves a pending listing to verified with the given class, records
// who decided and when, and emits exactly one notification to the owner.
// Approving an already-reviewed listing is a conflict, not a re-classification.
func (s *Service) Approve(ctx context.Context, propertyID uuid.UUID, class string, adminID uuid.UUID) (*models.Property, error) {
	if !models.ValidClass(class) {
		return nil, ErrInvalidClass
	}

	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).
		Model(&models.Property{}).
		Where("property_id = ? AND status = ?", propertyID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":            models.StatusVerified,
			"property_class":    class,
			"rejection_reason":  nil,
			"verified_by":       adminID,
			"verification_date": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.decisionConflict(ctx, propertyID)
	}

	var p models.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&p).Error; err != nil {
		return nil, err
	}

	// Side effects only after the status write is confirmed, so a retried
	// decision can never double-notify.
	title := p.Title
	ownerID := p.OwnerID
	ownerEmail := p.OwnerEmail
	pid := p.PropertyID
	s.enqueue("notify property verified", func(ctx context.Context) error {
		_, err := s.Notifications.Emit(ctx, notifications.EmitInput{
			UserID:     ownerID,
			Title:      "Property Verified",
			Message:    fmt.Sprintf("Your property %q has been verified as %s property.", title, class),
			Type:       models.NotifyPropertyVerified,
			PropertyID: &pid,
		})
		return err
	})
	if s.Emails != nil {
		s.enqueue("email property verified", func(ctx context.Context) error {
			return s.Emails.SendPropertyVerified(ctx, ownerEmail, title, class)
		})
	}
	return &p, nil
}

// Reject moves a pending listing to rejected with a mandatory reason and
// emits exactly one notification to the owner.
func (s *Service) Reject(ctx context.Context, propertyID uuid.UUID, reason string, adminID uuid.UUID) (*models.Property, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).
		Model(&models.Property{}).
		Where("property_id = ? AND status = ?", propertyID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":            models.StatusRejected,
			"rejection_reason":  reason,
			"verified_by":       adminID,
			"verification_date": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, s.decisionConflict(ctx, propertyID)
	}

	var p models.Property
	if err := s.DB.WithContext(ctx).Where("property_id = ?", propertyID).First(&p).Error; err != nil {
		return nil, err
	}

	title := p.Title
	ownerID := p.OwnerID
	ownerEmail := p.OwnerEmail
	pid := p.PropertyID
	s.enqueue("notify property rejected", func(ctx context.Context) error {
		_, err := s.Notifications.Emit(ctx, notifications.EmitInput{
			UserID:     ownerID,
			Title:      "Property Rejected",
			Message:    fmt.Sprintf("Your property %q has been rejected. Reason: %s", title, reason),
			Type:       models.NotifyPropertyRejected,
			PropertyID: &pid,
		})
		return err
	})
	if s.Emails != nil {
		s.enqueue("email property rejected", func(ctx context.Context) error {
			return s.Emails.SendPropertyRejected(ctx, ownerEmail, title, reason)
		})
	}
	return &p, nil
}

// decisionConflict distinguishes "no such listing" from "already reviewed"
// after a guarded decision update matched zero rows.
func (s *Service) decisionConflict(ctx context.Context, propertyID uuid.UUID) error {
	var count int64
	if err := s.DB.WithContext(ctx).
		Model(&models.Property{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrAlreadyReviewed
}

// ListByStatus returns listings in one moderation state, newest first.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]models.Property, error) {
	switch status {
	case models.StatusPending, models.StatusVerified, models.StatusRejected:
	default:
		return nil, ErrInvalidStatus
	}
	var out []models.Property
	if err := s.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC, property_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Stats is the admin dashboard summary.
type Stats struct {
	PendingPropertiesCount  int64             `json:"pendingPropertiesCount"`
	VerifiedPropertiesCount int64             `json:"verifiedPropertiesCount"`
	RejectedPropertiesCount int64             `json:"rejectedPropertiesCount"`
	TotalUsers              int64             `json:"totalUsers"`
	RecentProperties        []models.Property `json:"recentProperties"`
}

// DashboardStats counts listings per status and returns the five most
// recently submitted.
func (s *Service) DashboardStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	db := s.DB.WithContext(ctx)
	if err := db.Model(&models.Property{}).Where("status = ?", models.StatusPending).Count(&stats.PendingPropertiesCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Property{}).Where("status = ?", models.StatusVerified).Count(&stats.VerifiedPropertiesCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Property{}).Where("status = ?", models.StatusRejected).Count(&stats.RejectedPropertiesCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at DESC, property_id").Limit(5).Find(&stats.RecentProperties).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// enqueue runs fn on the task runner; with no runner (tests) it runs inline.
func (s *Service) enqueue(name string, fn func(ctx context.Context) error) {
	if s.Tasks != nil {
		s.Tasks.Enqueue(name, fn)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn().Str("task", name).Err(err).Msg("Side effect failed")
	}
}
