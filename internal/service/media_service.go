package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

type MediaService struct {
	mediaRepo *repository.MediaRepository
}

func NewMediaService(mediaRepo *repository.MediaRepository) *MediaService {
	return &MediaService{mediaRepo: mediaRepo}
}

// MediaTypeFromMIME maps a MIME content type to the stored media type.
// Only image/*, video/* and audio/* uploads are accepted.
func MediaTypeFromMIME(contentType string) (models.MediaType, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo, nil
	case strings.HasPrefix(contentType, "audio/"):
		return models.MediaTypeAudio, nil
	}
	return "", fmt.Errorf("%w: unsupported file type %q", ErrValidation, contentType)
}

// Record persists a Media row for an already-stored file.
func (s *MediaService) Record(ownerID uuid.UUID, mediaType models.MediaType, url string, purpose models.MediaPurpose, skillID, listingID *uuid.UUID) (*models.Media, error) {
	if !models.ValidMediaPurpose(purpose) {
		return nil, fmt.Errorf("%w: unknown media purpose", ErrValidation)
	}

	media := &models.Media{
		OwnerID:   ownerID,
		Type:      mediaType,
		URL:       url,
		Purpose:   purpose,
		SkillID:   skillID,
		ListingID: listingID,
	}

	if err := s.mediaRepo.Create(media); err != nil {
		logger.Log.Error("Failed to record media",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Media recorded",
		zap.String("media_id", media.ID.String()),
		zap.String("purpose", string(purpose)),
	)

	return media, nil
}

func (s *MediaService) ListByListing(listingID uuid.UUID) ([]models.Media, error) {
	return s.mediaRepo.ListByListing(listingID)
}

func (s *MediaService) ListBySkill(skillID uuid.UUID) ([]models.Media, error) {
	return s.mediaRepo.ListBySkill(skillID)
}
