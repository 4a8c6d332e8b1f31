package service

import (
	"context"
	"errors"
	"log"

	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotifyService owns the notification table. Rows are written by the session,
// request and rating engines as side effects; clients only ever list, count,
// mark-read and delete their own rows.
type NotifyService struct {
	db *gorm.DB
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	return &NotifyService{db: db}
}

// emit persists one notification. Failures are logged and swallowed: a lost
// notification must never fail the state transition that produced it.
func (s *NotifyService) emit(ctx context.Context, n *models.Notification) {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		log.Printf("❌ [NOTIFY] Failed to emit %s notification for user %s: %v", n.Type, n.UserID, err)
		return
	}
	log.Printf("🔔 [NOTIFY] %s → user %s: %s", n.Type, n.UserID, n.Title)
}

func (s *NotifyService) GetAll(ctx context.Context, userID uuid.UUID, pageSize, pageNumber int) ([]*models.Notification, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	var notifications []*models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((pageNumber - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotifyService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips one notification to read. Recipient-only: a foreign id looks
// the same as a missing one.
func (s *NotifyService) MarkRead(ctx context.Context, userID uuid.UUID, id uint) error {
	var n models.Notification
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Notification not found")
		}
		return err
	}
	return s.db.WithContext(ctx).Model(&n).Update("is_read", true).Error
}

func (s *NotifyService) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound("Notification not found")
	}
	return nil
}
