package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DB exposes the underlying handle for transactional service logic.
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser returns orders where the user is on either side of the trade,
// newest first.
func (r *OrderRepository) ListByUser(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("customer_id = ? OR homemaker_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ExistsForCustomerAndListing reports whether the customer has ever placed
// an order against the listing, in any status.
func (r *OrderRepository) ExistsForCustomerAndListing(customerID, listingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("customer_id = ? AND listing_id = ?", customerID, listingID).
		Count(&count).Error
	return count > 0, err
}
