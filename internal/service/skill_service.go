package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
)

type SkillInput struct {
	Category string
	Name     string
	Level    int
}

type SkillService struct {
	skillRepo *repository.SkillRepository
}

func NewSkillService(skillRepo *repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

// Create adds an unverified skill owned by the caller.
func (s *SkillService) Create(ownerID uuid.UUID, role models.Role, in SkillInput) (*models.Skill, error) {
	if role != models.RoleHomemaker {
		return nil, ErrForbidden
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if in.Level < 1 || in.Level > 5 {
		return nil, fmt.Errorf("%w: level must be between 1 and 5", ErrValidation)
	}

	skill := &models.Skill{
		OwnerID:  ownerID,
		Category: in.Category,
		Name:     in.Name,
		Level:    in.Level,
	}

	if err := s.skillRepo.Create(skill); err != nil {
		logger.Log.Error("Failed to create skill",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Skill created",
		zap.String("skill_id", skill.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	return skill, nil
}

func (s *SkillService) ListByOwner(ownerID uuid.UUID) ([]models.Skill, error) {
	return s.skillRepo.ListByOwner(ownerID)
}

// Verify marks a skill verified with the assessed level and detail payload.
// Verification is one-way; a verified skill is never downgraded.
func (s *SkillService) Verify(callerID, skillID uuid.UUID, level int, details string) (*models.Skill, error) {
	if level < 1 || level > 5 {
		return nil, fmt.Errorf("%w: level must be between 1 and 5", ErrValidation)
	}

	skill, err := s.skillRepo.GetByID(skillID)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, ErrNotFound
	}
	if skill.OwnerID != callerID {
		return nil, ErrForbidden
	}
	if skill.IsVerified {
		return nil, fmt.Errorf("%w: skill is already verified", ErrInvalidTransition)
	}

	skill.IsVerified = true
	skill.Level = level
	skill.VerificationDetails = details

	if err := s.skillRepo.Update(skill); err != nil {
		logger.Log.Error("Failed to verify skill",
			zap.String("skill_id", skillID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Skill verified",
		zap.String("skill_id", skillID.String()),
		zap.Int("level", level),
	)

	return skill, nil
}

// Delete removes an unwanted skill. Owner only.
func (s *SkillService) Delete(callerID, skillID uuid.UUID) error {
	skill, err := s.skillRepo.GetByID(skillID)
	if err != nil {
		return err
	}
	if skill == nil {
		return ErrNotFound
	}
	if skill.OwnerID != callerID {
		return ErrForbidden
	}
	return s.skillRepo.Delete(skillID)
}
