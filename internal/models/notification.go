package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types emitted by the verification engine.
const (
	NotifyPropertyVerified = "property_verified"
	NotifyPropertyRejected = "property_rejected"
)

// Notification is a durable event record directed at a user. There is no
// delivery guarantee beyond storage; users fetch their own notifications.
type Notification struct {
	NotificationID uuid.UUID  `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Title          string     `gorm:"column:title;not null" json:"title"`
	Message        string     `gorm:"column:message;not null" json:"message"`
	Type           string     `gorm:"column:type;type:varchar(30);not null" json:"type"`
	PropertyID     *uuid.UUID `gorm:"column:property_id;type:uuid" json:"property_id"`
	IsRead         bool       `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (Notification) TableName() string {
	return "Notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
