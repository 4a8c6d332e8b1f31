package service

import (
	"context"
	"errors"
	"time"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RatingService is an append-only ledger: no update or delete surface exists.
type RatingService struct {
	db     *gorm.DB
	notify *NotifyService
}

func NewRatingService(db *gorm.DB, notify *NotifyService) *RatingService {
	return &RatingService{db: db, notify: notify}
}

type RatingInput struct {
	TargetProfileID uint    `json:"targetProfileId"`
	Score           int     `json:"score"`
	Comment         *string `json:"comment"`
	SessionID       *uint   `json:"sessionId"`
}

// RatingView is one rating as shown on a profile page.
type RatingView struct {
	ID               uint      `json:"id"`
	SessionID        *uint     `json:"sessionId,omitempty"`
	RaterProfileID   uint      `json:"raterProfileId"`
	RaterDisplayName string    `json:"raterDisplayName"`
	TargetProfileID  uint      `json:"targetProfileId"`
	Score            int       `json:"score"`
	Comment          *string   `json:"comment,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Submit validates and persists a rating. With a session id both sides must
// have participated in that session (host or accepted requester); without one
// the rating is a general user-to-user rating with no participation check.
func (s *RatingService) Submit(ctx context.Context, userID uuid.UUID, in *RatingInput) (*models.Rating, error) {
	if in.Score < 1 || in.Score > 5 {
		return nil, BadRequest("Score must be between 1 and 5")
	}

	var rater models.Profile
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&rater).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, BadRequest("You must have a profile to submit ratings")
		}
		return nil, err
	}

	var target models.Profile
	err = s.db.WithContext(ctx).First(&target, in.TargetProfileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Target profile not found")
		}
		return nil, err
	}

	if in.SessionID != nil {
		var session models.Session
		err := s.db.WithContext(ctx).First(&session, *in.SessionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFound("Session not found")
			}
			return nil, err
		}

		raterParticipated, err := s.participated(ctx, &session, rater.ID)
		if err != nil {
			return nil, err
		}
		if !raterParticipated {
			return nil, Forbidden("You did not participate in this session")
		}

		targetParticipated, err := s.participated(ctx, &session, target.ID)
		if err != nil {
			return nil, err
		}
		if !targetParticipated {
			return nil, BadRequest("Target profile did not participate in the session")
		}
	}

	rating := models.Rating{
		SessionID:       in.SessionID,
		RaterProfileID:  rater.ID,
		TargetProfileID: target.ID,
		Score:           in.Score,
		Comment:         in.Comment,
	}
	if err := s.db.WithContext(ctx).Create(&rating).Error; err != nil {
		return nil, err
	}

	s.notify.emit(ctx, ratingNotification(target.UserID, &rating, rater.Name()))
	return &rating, nil
}

// participated reports whether a profile was the session's host or held an
// accepted request on it.
func (s *RatingService) participated(ctx context.Context, session *models.Session, profileID uint) (bool, error) {
	if session.HostProfileID == profileID {
		return true, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SessionRequest{}).
		Where("session_id = ? AND requester_profile_id = ? AND status = ?",
			session.ID, profileID, models.RequestStatusAccepted).
		Count(&count).Error
	return count > 0, err
}

func (s *RatingService) ForProfile(ctx context.Context, profileID uint) ([]RatingView, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Preload("RaterProfile.User").
		Where("target_profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	views := make([]RatingView, 0, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		v := RatingView{
			ID:              r.ID,
			SessionID:       r.SessionID,
			RaterProfileID:  r.RaterProfileID,
			TargetProfileID: r.TargetProfileID,
			Score:           r.Score,
			Comment:         r.Comment,
			CreatedAt:       r.CreatedAt,
		}
		if r.RaterProfile != nil {
			v.RaterDisplayName = r.RaterProfile.Name()
		}
		views = append(views, v)
	}
	return views, nil
}

// Average returns the arithmetic mean of scores, 0 when no ratings exist.
func (s *RatingService) Average(ctx context.Context, profileID uint) (float64, error) {
	var avg *float64
	err := s.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("target_profile_id = ?", profileID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
