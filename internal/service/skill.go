package service

import (
	"context"
	"errors"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"gorm.io/gorm"
)

type SkillService struct {
	db *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

func (s *SkillService) GetAll(ctx context.Context) ([]*models.Skill, error) {
	var skills []*models.Skill
	err := s.db.WithContext(ctx).Order("name ASC").Find(&skills).Error
	return skills, err
}

func (s *SkillService) Get(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	err := s.db.WithContext(ctx).First(&skill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Skill not found")
		}
		return nil, err
	}
	return &skill, nil
}
