// internal/database/db.go
package database

import (
	"fmt"
	"log"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/config"
	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB(cfg *config.Config) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	log.Println("✅ SkillSwap DB connected & migrated")

	if err := seedSkills(db); err != nil {
		log.Printf("⚠️ Failed to seed skills: %v", err)
	}
	if err := seedAdmin(db, cfg); err != nil {
		log.Printf("⚠️ Failed to seed admin user: %v", err)
	}
}

// Migrate runs auto-migration for every entity. Exposed so tests can bring up
// the same schema on an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Profile{},
		&models.Session{},
		&models.SessionRequest{},
		&models.Rating{},
		&models.Notification{},
	)
}

func GetDB() *gorm.DB {
	return db
}
