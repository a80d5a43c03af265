package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"gorm.io/gorm"
)

// ListingFilter describes a search over listings. All set fields are
// AND-combined; zero values mean "no constraint".
type ListingFilter struct {
	Query    string
	Category string
	Type     models.ListingType
	Tag      string
	MinPrice int64
	MaxPrice int64
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepository) GetByID(id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) ListByOwner(ownerID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// Search returns active listings matching every set filter field.
func (r *ListingRepository) Search(filter ListingFilter) ([]models.Listing, error) {
	q := r.db.Where("status = ?", models.ListingStatusActive)

	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		q = q.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
	}

	var listings []models.Listing
	err := q.Order("created_at DESC").Find(&listings).Error
	return listings, err
}

// Featured returns the most recently created active listings.
func (r *ListingRepository) Featured(limit int) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("status = ?", models.ListingStatusActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&listings).Error
	return listings, err
}

func (r *ListingRepository) Update(listing *models.Listing) error {
	return r.db.Save(listing).Error
}

func (r *ListingRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Listing{}, "id = ?", id).Error
}
