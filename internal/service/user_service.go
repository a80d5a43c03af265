package service

import (
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

// ProfileUpdate lists the profile fields a user may change about themselves.
// Role, email, username and password are deliberately absent.
type ProfileUpdate struct {
	FullName  *string
	Bio       *string
	Location  *string
	Phone     *string
	AvatarURL *string
}

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetPublicProfile returns the public projection of a user, or ErrNotFound.
func (s *UserService) GetPublicProfile(id uuid.UUID) (*models.PublicProfile, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch user",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	profile := user.Public()
	return &profile, nil
}

// UpdateProfile applies a partial profile update. Only the owner may update
// their own record; the caller identity check happens here, not in handlers.
func (s *UserService) UpdateProfile(callerID, targetID uuid.UUID, update ProfileUpdate) (*models.User, error) {
	if callerID != targetID {
		logger.Log.Warn("Profile update rejected: not the profile owner",
			zap.String("caller_id", callerID.String()),
			zap.String("target_id", targetID.String()),
		)
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{}
	if update.FullName != nil {
		fields["full_name"] = *update.FullName
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.Location != nil {
		fields["location"] = *update.Location
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.AvatarURL != nil {
		fields["avatar_url"] = *update.AvatarURL
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateProfile(targetID, fields); err != nil {
			logger.Log.Error("Failed to update profile",
				zap.String("user_id", targetID.String()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	updated, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Profile updated",
		zap.String("user_id", targetID.String()),
		zap.Int("fields", len(fields)),
	)

	return updated, nil
}
