package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill belongs to exactly one homemaker. It is created unverified and may
// transition to verified once; there is no path back.
type Skill struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID             uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Category            string    `gorm:"type:varchar(50);not null" json:"category"`
	Name                string    `gorm:"type:varchar(100);not null" json:"name"`
	Level               int       `gorm:"not null;default:1" json:"level"`
	IsVerified          bool      `gorm:"not null;default:false" json:"is_verified"`
	VerificationDetails string    `gorm:"type:text" json:"verification_details"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
