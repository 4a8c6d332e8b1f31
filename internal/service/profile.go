package service

import (
	"context"
	"errors"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type ProfileInput struct {
	DisplayName      *string `json:"displayName"`
	Bio              *string `json:"bio"`
	Location         *string `json:"location"`
	Availability     *string `json:"availability"`
	Contact          *string `json:"contact"`
	SkillsOfferedIDs []uint  `json:"skillsOfferedIds"`
	SkillsWantedIDs  []uint  `json:"skillsWantedIds"`
}

func (s *ProfileService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("SkillsOffered").
		Preload("SkillsWanted").
		Preload("User")
}

func (s *ProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := s.preloaded(ctx).Find(&profiles).Error
	return profiles, err
}

func (s *ProfileService) Get(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	err := s.preloaded(ctx).First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Profile not found")
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUser returns the caller's own profile, NotFound when none exists yet —
// the client treats that as "show the create form".
func (s *ProfileService) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.preloaded(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Profile not found")
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the caller's profile on first call and updates the same row
// afterwards. Both skill sets are replaced whole with the supplied id lists;
// ids that match no skill are silently dropped.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, in *ProfileInput) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := s.applyInput(ctx, &profile, in); err != nil {
		return nil, err
	}
	return s.Get(ctx, profile.ID)
}

// Update edits any profile by id; only the owner or an admin may do so.
func (s *ProfileService) Update(ctx context.Context, id uint, callerID uuid.UUID, callerIsAdmin bool, in *ProfileInput) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Profile not found")
		}
		return nil, err
	}
	if profile.UserID != callerID && !callerIsAdmin {
		return nil, Forbidden("You can only edit your own profile")
	}

	if err := s.applyInput(ctx, &profile, in); err != nil {
		return nil, err
	}
	return s.Get(ctx, profile.ID)
}

func (s *ProfileService) Delete(ctx context.Context, id uint, callerID uuid.UUID, callerIsAdmin bool) error {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Profile not found")
		}
		return err
	}
	if profile.UserID != callerID && !callerIsAdmin {
		return Forbidden("You can only delete your own profile")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&profile).Association("SkillsOffered").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&profile).Association("SkillsWanted").Clear(); err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
}

func (s *ProfileService) applyInput(ctx context.Context, profile *models.Profile, in *ProfileInput) error {
	updates := map[string]any{
		"display_name": in.DisplayName,
		"bio":          in.Bio,
		"location":     in.Location,
		"availability": in.Availability,
		"contact":      in.Contact,
	}
	if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
		return err
	}

	offered, err := s.lookupSkills(ctx, in.SkillsOfferedIDs)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(profile).Association("SkillsOffered").Replace(offered); err != nil {
		return err
	}

	wanted, err := s.lookupSkills(ctx, in.SkillsWantedIDs)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(profile).Association("SkillsWanted").Replace(wanted)
}

func (s *ProfileService) lookupSkills(ctx context.Context, ids []uint) ([]models.Skill, error) {
	if len(ids) == 0 {
		return []models.Skill{}, nil
	}
	var skills []models.Skill
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}
