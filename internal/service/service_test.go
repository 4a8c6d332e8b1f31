package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/database"
	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"
	"github.com/fuzzlea/bpa-skillswap-v04/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, userName string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		UserName:     userName,
		Email:        userName + "@example.com",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProfile(t *testing.T, db *gorm.DB, user *models.User, displayName string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID:      user.ID,
		DisplayName: &displayName,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func createSkill(t *testing.T, db *gorm.DB, name string) *models.Skill {
	t.Helper()
	skill := &models.Skill{Name: name}
	require.NoError(t, db.Create(skill).Error)
	return skill
}

func wantSkill(t *testing.T, db *gorm.DB, profile *models.Profile, skill *models.Skill) {
	t.Helper()
	require.NoError(t, db.Model(profile).Association("SkillsWanted").Append(skill))
}

func notificationsFor(t *testing.T, db *gorm.DB, user *models.User) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&notifications).Error)
	return notifications
}

func strPtr(s string) *string { return &s }

func uintPtr(n uint) *uint { return &n }

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

// kindOf asserts err is a *service.Error of the given kind.
func kindOf(t *testing.T, err error, kind service.Kind) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*service.Error)
	require.True(t, ok, "expected *service.Error, got %T: %v", err, err)
	require.Equal(t, kind, svcErr.Kind, "unexpected error kind for %q", svcErr.Message)
}

var ctx = context.Background()
