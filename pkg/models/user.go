package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the login identity. Public profile data lives on Profile.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserName     string    `json:"userName" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;index"`
	PasswordHash string    `json:"-" gorm:"type:varchar(100);not null"`
	DisplayName  *string   `json:"displayName,omitempty" gorm:"type:varchar(100)"`
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Roles returns the role claims carried in issued tokens.
func (u *User) Roles() []string {
	if u.IsAdmin {
		return []string{"Admin"}
	}
	return []string{}
}
