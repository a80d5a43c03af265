package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// Terminal reports whether no further transition may leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// Order records a purchase of a listing. HomemakerID is copied from the
// listing's owner at creation time and never re-derived, so a listing
// transferred afterwards does not retroactively change the order's seller.
// TotalAmount is always Price x Quantity from the listing row at creation.
type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"listing_id"`
	CustomerID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id"`
	HomemakerID uuid.UUID   `gorm:"type:uuid;not null;index" json:"homemaker_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`
	Notes       string      `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Listing Listing `gorm:"foreignKey:ListingID" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
