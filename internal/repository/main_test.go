package repository

import (
	"context"
	"fmt"
	"testing"

	"devlink/internal/cache"
	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; pin the pool to a
	// single connection so every query sees the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// noCache returns a disabled cache; repository behavior must not depend on
// Redis being present.
func noCache() *cache.Cache {
	return &cache.Cache{}
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed-password",
		Avatar:   "https://www.gravatar.com/avatar/abc",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProfile(t *testing.T, db *gorm.DB, userID uint) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		UserID: userID,
		Status: "Developer",
		Skills: []string{"Go", "SQL"},
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func createTestPost(t *testing.T, db *gorm.DB, user *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID: user.ID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func testCtx() context.Context {
	return context.Background()
}
