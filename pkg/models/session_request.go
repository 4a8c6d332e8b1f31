package models

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusAccepted RequestStatus = "Accepted"
	RequestStatusRejected RequestStatus = "Rejected"
)

// SessionRequest is a join request from one profile against another's session.
// Status moves one-way out of Pending; a kick moves Accepted to Rejected while
// keeping the row for history. HasAttended/VerifiedAt are only meaningful while
// the request is Accepted and are set by the session host.
type SessionRequest struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	SessionID          uint          `json:"sessionId" gorm:"index;not null"`
	Session            *Session      `json:"-" gorm:"foreignKey:SessionID"`
	RequesterProfileID uint          `json:"requesterProfileId" gorm:"index;not null"`
	RequesterProfile   *Profile      `json:"-" gorm:"foreignKey:RequesterProfileID"`
	Message            *string       `json:"message,omitempty" gorm:"type:text"`
	Status             RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	HasAttended        bool          `json:"hasAttended" gorm:"not null;default:false"`
	VerifiedAt         *time.Time    `json:"verifiedAt,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}

func (SessionRequest) TableName() string {
	return "session_requests"
}
