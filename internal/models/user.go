package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the user directory consumed by the listing and chat modules.
// Signup/login/OTP live outside this service; rows here are provisioned by it.
type User struct {
	UserID      uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	FullName    string         `gorm:"column:full_name;not null" json:"full_name"`
	Email       string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PhoneNumber string         `gorm:"column:phone_number" json:"phone_number"`
	Favorites   datatypes.JSON `gorm:"column:favorites;type:json" json:"favorites"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (User) TableName() string {
	return "Users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
