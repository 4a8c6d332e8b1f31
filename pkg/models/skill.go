package models

// Skill is seeded reference data; the API only ever reads it.
type Skill struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Skill) TableName() string {
	return "skills"
}
