package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

const featuredLimit = 8

type ListingInput struct {
	Title       string
	Description string
	Price       int64
	Type        models.ListingType
	Category    string
	Tags        []string
	Status      models.ListingStatus
}

// ListingUpdate is a partial update; nil fields are left untouched.
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *int64
	Category    *string
	Tags        []string
	Status      *models.ListingStatus
}

type ListingService struct {
	listingRepo *repository.ListingRepository
}

func NewListingService(listingRepo *repository.ListingRepository) *ListingService {
	return &ListingService{listingRepo: listingRepo}
}

// Create makes a new listing owned by the caller. Only homemakers sell.
func (s *ListingService) Create(ownerID uuid.UUID, role models.Role, in ListingInput) (*models.Listing, error) {
	if role != models.RoleHomemaker {
		logger.Log.Warn("Listing creation rejected: not a homemaker",
			zap.String("user_id", ownerID.String()),
			zap.String("role", string(role)),
		)
		return nil, ErrForbidden
	}

	if err := validateListingInput(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ListingStatusActive
	}

	listing := &models.Listing{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Type:        in.Type,
		Category:    in.Category,
		Tags:        in.Tags,
		Status:      status,
	}

	if err := s.listingRepo.Create(listing); err != nil {
		logger.Log.Error("Failed to create listing",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Int64("price", listing.Price),
	)

	return listing, nil
}

func (s *ListingService) GetByID(id uuid.UUID) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	return listing, nil
}

func (s *ListingService) Search(filter repository.ListingFilter) ([]models.Listing, error) {
	return s.listingRepo.Search(filter)
}

func (s *ListingService) Featured() ([]models.Listing, error) {
	return s.listingRepo.Featured(featuredLimit)
}

func (s *ListingService) ListByOwner(ownerID uuid.UUID) ([]models.Listing, error) {
	return s.listingRepo.ListByOwner(ownerID)
}

// Update applies a partial update. Non-owners are rejected with no mutation,
// even when authenticated.
func (s *ListingService) Update(callerID uuid.UUID, listingID uuid.UUID, update ListingUpdate) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrNotFound
	}
	if listing.OwnerID != callerID {
		logger.Log.Warn("Listing update rejected: not the owner",
			zap.String("listing_id", listingID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return nil, ErrForbidden
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		listing.Title = *update.Title
	}
	if update.Description != nil {
		listing.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		listing.Price = *update.Price
	}
	if update.Category != nil {
		listing.Category = *update.Category
	}
	if update.Tags != nil {
		listing.Tags = update.Tags
	}
	if update.Status != nil {
		if !models.ValidListingStatus(*update.Status) {
			return nil, fmt.Errorf("%w: unknown listing status", ErrValidation)
		}
		listing.Status = *update.Status
	}

	if err := s.listingRepo.Update(listing); err != nil {
		logger.Log.Error("Failed to update listing",
			zap.String("listing_id", listingID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Listing updated", zap.String("listing_id", listingID.String()))

	return listing, nil
}

// Delete removes a listing. Only the owner may delete.
func (s *ListingService) Delete(callerID, listingID uuid.UUID) error {
	listing, err := s.listingRepo.GetByID(listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return ErrNotFound
	}
	if listing.OwnerID != callerID {
		logger.Log.Warn("Listing delete rejected: not the owner",
			zap.String("listing_id", listingID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return ErrForbidden
	}

	if err := s.listingRepo.Delete(listingID); err != nil {
		logger.Log.Error("Failed to delete listing",
			zap.String("listing_id", listingID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Listing deleted", zap.String("listing_id", listingID.String()))
	return nil
}

func validateListingInput(in ListingInput) error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(in.Title) > 200 {
		return fmt.Errorf("%w: title too long", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if !models.ValidListingType(in.Type) {
		return fmt.Errorf("%w: type must be service or product", ErrValidation)
	}
	if in.Status != "" && !models.ValidListingStatus(in.Status) {
		return fmt.Errorf("%w: unknown listing status", ErrValidation)
	}
	return nil
}
