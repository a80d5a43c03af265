package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/models"
	"gorm.io/gorm"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

func (r *SkillRepository) GetByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("id = ?", id).First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) ListByOwner(ownerID uuid.UUID) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) Update(skill *models.Skill) error {
	return r.db.Save(skill).Error
}

func (r *SkillRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Skill{}, "id = ?", id).Error
}
