package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeSessionCreated    NotificationType = "SessionCreated"
	NotificationTypeJoinRequest       NotificationType = "JoinRequest"
	NotificationTypeRating            NotificationType = "Rating"
	NotificationTypeRequestAccepted   NotificationType = "RequestAccepted"
	NotificationTypeRequestRejected   NotificationType = "RequestRejected"
	NotificationTypeKickedFromSession NotificationType = "KickedFromSession"
)

// Notification is created only as a side effect of engine state transitions
// and is mutated only by its recipient (mark read, delete). Clients poll; no
// push delivery.
type Notification struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	UserID           uuid.UUID        `json:"userId" gorm:"type:uuid;index;not null"`
	User             *User            `json:"-" gorm:"foreignKey:UserID"`
	Type             NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Title            string           `json:"title" gorm:"type:varchar(200);not null"`
	Content          *string          `json:"content,omitempty" gorm:"type:text"`
	RelatedSessionID *uint            `json:"relatedSessionId,omitempty" gorm:"index"`
	RelatedProfileID *uint            `json:"relatedProfileId,omitempty"`
	RelatedRatingID  *uint            `json:"relatedRatingId,omitempty"`
	Metadata         datatypes.JSON   `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time        `json:"createdAt"`
	IsRead           bool             `json:"isRead" gorm:"not null;default:false"`
}

func (Notification) TableName() string {
	return "notifications"
}
