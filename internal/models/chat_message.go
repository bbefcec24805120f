package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage delivery statuses. Transitions are monotonic:
// sent -> delivered -> read, never backwards.
const (
	MessageSent      = "sent"
	MessageDelivered = "delivered"
	MessageRead      = "read"
)

// ChatMessage is one message between two users, keyed by email on both ends.
// PropertyID is set when the conversation started from a listing detail page
// and nil for direct messages.
type ChatMessage struct {
	MessageID     uuid.UUID  `gorm:"column:message_id;type:uuid;primaryKey" json:"message_id"`
	SenderEmail   string     `gorm:"column:sender_email;not null;index" json:"sender_email"`
	ReceiverEmail string     `gorm:"column:receiver_email;not null;index" json:"receiver_email"`
	Message       string     `gorm:"column:message;not null" json:"message"`
	PropertyID    *uuid.UUID `gorm:"column:property_id;type:uuid" json:"property_id"`
	Status        string     `gorm:"column:status;type:varchar(10);default:'sent'" json:"status"`
	Timestamp     time.Time  `gorm:"column:timestamp;not null;index" json:"timestamp"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (ChatMessage) TableName() string {
	return "ChatMessages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}

// StatusRank orders message statuses for monotonic advancement.
func StatusRank(s string) int {
	switch s {
	case MessageSent:
		return 0
	case MessageDelivered:
		return 1
	case MessageRead:
		return 2
	}
	return -1
}
