package repository

import (
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) ListByListing(listingID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("listing_id = ?", listingID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) ListByRecipient(recipientID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("recipient_id = ?", recipientID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// SummaryForRecipient aggregates count and average rating for a homemaker.
func (r *ReviewRepository) SummaryForRecipient(recipientID uuid.UUID) (*models.RatingSummary, error) {
	summary := &models.RatingSummary{RecipientID: recipientID}

	err := r.db.Model(&models.Review{}).
		Where("recipient_id = ?", recipientID).
		Count(&summary.TotalReviews).Error
	if err != nil {
		return nil, err
	}

	if summary.TotalReviews > 0 {
		err = r.db.Model(&models.Review{}).
			Where("recipient_id = ?", recipientID).
			Select("AVG(rating)").
			Scan(&summary.AverageRating).Error
		if err != nil {
			return nil, err
		}
	}

	return summary, nil
}
