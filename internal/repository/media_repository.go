package repository

import (
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(media *models.Media) error {
	return r.db.Create(media).Error
}

func (r *MediaRepository) ListByListing(listingID uuid.UUID) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Where("listing_id = ?", listingID).Order("created_at DESC").Find(&media).Error
	return media, err
}

func (r *MediaRepository) ListBySkill(skillID uuid.UUID) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Where("skill_id = ?", skillID).Order("created_at DESC").Find(&media).Error
	return media, err
}
