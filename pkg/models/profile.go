package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a user's public skill-exchange identity. At most one per user,
// enforced by the unique index on UserID.
type Profile struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	User         *User     `json:"-" gorm:"foreignKey:UserID"`
	DisplayName  *string   `json:"displayName,omitempty" gorm:"type:varchar(100)"`
	Bio          *string   `json:"bio,omitempty" gorm:"type:text"`
	Location     *string   `json:"location,omitempty" gorm:"type:varchar(200)"`
	Availability *string   `json:"availability,omitempty" gorm:"type:varchar(200)"`
	Contact      *string   `json:"contact,omitempty" gorm:"type:varchar(200)"`

	SkillsOffered []Skill `json:"skillsOffered" gorm:"many2many:profile_skills_offered"`
	SkillsWanted  []Skill `json:"skillsWanted" gorm:"many2many:profile_skills_wanted"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Name resolves the display name shown to other users, falling back to the
// login username when the profile has none set.
func (p *Profile) Name() string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	if p.User != nil {
		return p.User.UserName
	}
	return "Unknown"
}
