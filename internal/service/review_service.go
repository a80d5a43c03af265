package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

type ReviewInput struct {
	ListingID uuid.UUID
	Rating    int
	Comment   string
}

type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	listingRepo *repository.ListingRepository
	orderRepo   *repository.OrderRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, listingRepo *repository.ListingRepository, orderRepo *repository.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
		orderRepo:   orderRepo,
	}
}

// Create records an immutable review. The recipient is always the listing's
// current owner, read server-side; the author must be a customer with at
// least one order against the listing.
func (s *ReviewService) Create(authorID uuid.UUID, role models.Role, in ReviewInput) (*models.Review, error) {
	if role != models.RoleCustomer {
		logger.Log.Warn("Review rejected: not a customer",
			zap.String("user_id", authorID.String()),
			zap.String("role", string(role)),
		)
		return nil, ErrForbidden
	}

	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if len(in.Comment) > 1000 {
		return nil, fmt.Errorf("%w: comment too long", ErrValidation)
	}

	listing, err := s.listingRepo.GetByID(in.ListingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	if listing.OwnerID == authorID {
		return nil, fmt.Errorf("%w: cannot review your own listing", ErrForbidden)
	}

	ordered, err := s.orderRepo.ExistsForCustomerAndListing(authorID, in.ListingID)
	if err != nil {
		logger.Log.Error("Failed to check order history for review",
			zap.String("author_id", authorID.String()),
			zap.String("listing_id", in.ListingID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if !ordered {
		logger.Log.Warn("Review rejected: no order for listing",
			zap.String("author_id", authorID.String()),
			zap.String("listing_id", in.ListingID.String()),
		)
		return nil, fmt.Errorf("%w: you can only review listings you have ordered", ErrForbidden)
	}

	review := &models.Review{
		ListingID:   in.ListingID,
		AuthorID:    authorID,
		RecipientID: listing.OwnerID,
		Rating:      in.Rating,
		Comment:     in.Comment,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		logger.Log.Error("Failed to create review",
			zap.String("author_id", authorID.String()),
			zap.String("listing_id", in.ListingID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("listing_id", in.ListingID.String()),
		zap.String("recipient_id", review.RecipientID.String()),
		zap.Int("rating", in.Rating),
	)

	return review, nil
}

func (s *ReviewService) ListByListing(listingID uuid.UUID) ([]models.Review, error) {
	return s.reviewRepo.ListByListing(listingID)
}

func (s *ReviewService) ListByRecipient(recipientID uuid.UUID) ([]models.Review, error) {
	return s.reviewRepo.ListByRecipient(recipientID)
}

func (s *ReviewService) SummaryForRecipient(recipientID uuid.UUID) (*models.RatingSummary, error) {
	return s.reviewRepo.SummaryForRecipient(recipientID)
}
