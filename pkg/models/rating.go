package models

import "time"

// Rating is append-only scored feedback from one profile about another.
// SessionID is nullable: session-scoped ratings require both parties to have
// participated, general ratings do not.
type Rating struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	SessionID       *uint     `json:"sessionId,omitempty" gorm:"index"`
	Session         *Session  `json:"-" gorm:"foreignKey:SessionID"`
	RaterProfileID  uint      `json:"raterProfileId" gorm:"index;not null"`
	RaterProfile    *Profile  `json:"-" gorm:"foreignKey:RaterProfileID"`
	TargetProfileID uint      `json:"targetProfileId" gorm:"index;not null"`
	TargetProfile   *Profile  `json:"-" gorm:"foreignKey:TargetProfileID"`
	Score           int       `json:"score" gorm:"not null"`
	Comment         *string   `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (Rating) TableName() string {
	return "ratings"
}
