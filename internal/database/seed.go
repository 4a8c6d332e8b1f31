// internal/database/seed.go
package database

import (
	"errors"
	"log"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/config"
	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultSkills is the reference catalog offered to new deployments. Skills
// have no write endpoint, so this is the only way rows get in.
var defaultSkills = []string{
	"Guitar",
	"Piano",
	"Photography",
	"Cooking",
	"Baking",
	"Spanish",
	"French",
	"Japanese",
	"Web Development",
	"Graphic Design",
	"Public Speaking",
	"Creative Writing",
	"Yoga",
	"Chess",
	"Gardening",
	"Woodworking",
	"Knitting",
	"Drawing",
	"Video Editing",
	"First Aid",
}

func seedSkills(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Skill{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	skills := make([]models.Skill, 0, len(defaultSkills))
	for _, name := range defaultSkills {
		skills = append(skills, models.Skill{Name: name})
	}
	if err := db.Create(&skills).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded %d skills", len(skills))
	return nil
}

// seedAdmin ensures an admin account exists. A default password is only used
// outside production; in production the seed is skipped unless ADMIN_PASSWORD
// is configured.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	password := cfg.AdminPassword
	if password == "" {
		if cfg.Env == "production" {
			log.Println("⚠️ Admin user not created: ADMIN_PASSWORD not set in production")
			return nil
		}
		password = "Admin123!" // dev default
	}

	var admin models.User
	err := db.Where("user_name = ?", cfg.AdminUserName).First(&admin).Error
	if err == nil {
		if !admin.IsAdmin {
			return db.Model(&admin).Update("is_admin", true).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	displayName := "Administrator"
	admin = models.User{
		UserName:     cfg.AdminUserName,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		DisplayName:  &displayName,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded admin user %q", cfg.AdminUserName)
	return nil
}
