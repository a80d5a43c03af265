package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
)

type MediaPurpose string

const (
	MediaPurposeSkillVerification MediaPurpose = "skill_verification"
	MediaPurposeListing           MediaPurpose = "listing"
	MediaPurposeProfile           MediaPurpose = "profile"
)

func ValidMediaPurpose(p MediaPurpose) bool {
	switch p {
	case MediaPurposeSkillVerification, MediaPurposeListing, MediaPurposeProfile:
		return true
	}
	return false
}

// Media is an uploaded file attached to at most one skill or listing.
type Media struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"owner_id"`
	Type      MediaType    `gorm:"type:varchar(20);not null" json:"type"`
	URL       string       `gorm:"type:varchar(500);not null" json:"url"`
	Purpose   MediaPurpose `gorm:"type:varchar(30);not null" json:"purpose"`
	SkillID   *uuid.UUID   `gorm:"type:uuid;index" json:"skill_id,omitempty"`
	ListingID *uuid.UUID   `gorm:"type:uuid;index" json:"listing_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
