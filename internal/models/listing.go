package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingType string

const (
	ListingTypeService ListingType = "service"
	ListingTypeProduct ListingType = "product"
)

type ListingStatus string

const (
	ListingStatusDraft    ListingStatus = "draft"
	ListingStatusActive   ListingStatus = "active"
	ListingStatusInactive ListingStatus = "inactive"
	ListingStatusPending  ListingStatus = "pending"
)

func ValidListingType(t ListingType) bool {
	return t == ListingTypeService || t == ListingTypeProduct
}

func ValidListingStatus(s ListingStatus) bool {
	switch s {
	case ListingStatusDraft, ListingStatusActive, ListingStatusInactive, ListingStatusPending:
		return true
	}
	return false
}

// Listing is a sellable service or product entry owned by a homemaker.
// Price is in minor currency units.
type Listing struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string        `gorm:"type:varchar(200);not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Price       int64         `gorm:"not null" json:"price"`
	Type        ListingType   `gorm:"type:varchar(20);not null" json:"type"`
	Category    string        `gorm:"type:varchar(50);index" json:"category"`
	Tags        []string      `gorm:"serializer:json" json:"tags"`
	Status      ListingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
