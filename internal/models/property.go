package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property status values. Status is the single source of truth for visibility:
// only verified properties are publicly queryable.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Property classes assigned at verification time.
const (
	ClassRegular = "Regular"
	ClassPremium = "Premium"
	ClassTop     = "Top"
)

// Property is a listing submitted by a user, moderated by an admin.
// Ownership is canonical by OwnerID; OwnerEmail is a denormalized fallback key.
type Property struct {
	PropertyID       uuid.UUID      `gorm:"column:property_id;type:uuid;primaryKey" json:"property_id"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Type             string         `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Purpose          string         `gorm:"column:purpose;type:varchar(10);not null" json:"purpose"`
	Location         string         `gorm:"column:location;not null" json:"location"`
	Size             string         `gorm:"column:size" json:"size"`
	Price            float64        `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	IsNegotiable     bool           `gorm:"column:is_negotiable;default:false" json:"is_negotiable"`
	Description      string         `gorm:"column:description;not null" json:"description"`
	AvailabilityDate string         `gorm:"column:availability_date" json:"availability_date"`
	ContactInfo      string         `gorm:"column:contact_info" json:"contact_info"`
	Images           datatypes.JSON `gorm:"column:images;type:json" json:"images"`
	RoomDetails      datatypes.JSON `gorm:"column:room_details;type:json" json:"room_details"`
	Features         datatypes.JSON `gorm:"column:features;type:json" json:"features"`
	FloorLevel       string         `gorm:"column:floor_level" json:"floor_level"`
	FacingDirection  string         `gorm:"column:facing_direction;type:varchar(20)" json:"facing_direction"`
	Status           string         `gorm:"column:status;type:varchar(10);default:'pending';index" json:"status"`
	PropertyClass    string         `gorm:"column:property_class;type:varchar(10);default:'Regular'" json:"property_class"`
	RejectionReason  *string        `gorm:"column:rejection_reason" json:"rejection_reason"`
	OwnerID          uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	OwnerEmail       string         `gorm:"column:owner_email;not null;index" json:"owner_email"`
	VerifiedBy       *uuid.UUID     `gorm:"column:verified_by;type:uuid" json:"verified_by"`
	VerificationDate *time.Time     `gorm:"column:verification_date" json:"verification_date"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func (Property) TableName() string {
	return "Properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.PropertyID == uuid.Nil {
		p.PropertyID = uuid.New()
	}
	return nil
}

// ValidType reports whether t is one of the allowed property types.
func ValidType(t string) bool {
	switch t {
	case "Apartment", "House", "Villa", "Land", "Commercial":
		return true
	}
	return false
}

// ValidPurpose reports whether p is Sale or Rent.
func ValidPurpose(p string) bool {
	return p == "Sale" || p == "Rent"
}

// ValidClass reports whether c is an assignable property class.
func ValidClass(c string) bool {
	return c == ClassRegular || c == ClassPremium || c == ClassTop
}
