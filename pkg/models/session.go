package models

import "time"

// Session is a scheduled skill-sharing event hosted by one profile.
// IsOpen starts true and is flipped to false the first time a join request on
// the session is accepted; the host can still toggle it via update.
type Session struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"type:varchar(200);not null"`
	Description     *string   `json:"description,omitempty" gorm:"type:text"`
	SkillID         *uint     `json:"skillId,omitempty" gorm:"index"`
	Skill           *Skill    `json:"skill,omitempty" gorm:"foreignKey:SkillID"`
	HostProfileID   uint      `json:"hostProfileId" gorm:"index;not null"`
	HostProfile     *Profile  `json:"-" gorm:"foreignKey:HostProfileID"`
	ScheduledAt     time.Time `json:"scheduledAt" gorm:"not null"`
	DurationMinutes int       `json:"durationMinutes" gorm:"not null"`
	IsOpen          bool      `json:"isOpen" gorm:"not null;default:true"`

	Requests []SessionRequest `json:"-" gorm:"foreignKey:SessionID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Session) TableName() string {
	return "sessions"
}
