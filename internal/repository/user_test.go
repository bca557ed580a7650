package repository

import (
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noCache())

	user := &models.User{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "hashed",
	}
	require.NoError(t, repo.Create(testCtx(), user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noCache())

	_, err := repo.GetByID(testCtx(), 999)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noCache())

	first := &models.User{Name: "First", Email: "dup@example.com", Password: "x"}
	require.NoError(t, repo.Create(testCtx(), first))

	second := &models.User{Name: "Second", Email: "dup@example.com", Password: "y"}
	err := repo.Create(testCtx(), second)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_GetByEmail_MissingIsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noCache())

	got, err := repo.GetByEmail(testCtx(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_DeleteAccount_Cascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noCache())

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	profile := createTestProfile(t, db, owner.ID)
	require.NoError(t, db.Create(&models.Experience{ProfileID: profile.ID, Title: "Dev", Company: "Acme"}).Error)
	require.NoError(t, db.Create(&models.Education{ProfileID: profile.ID, School: "MIT", Degree: "BSc", FieldOfStudy: "CS"}).Error)

	ownPost := createTestPost(t, db, owner, "my post")
	otherPost := createTestPost(t, db, other, "their post")

	// Engagement on the owner's post by the other user, and by the owner on
	// the other user's post.
	require.NoError(t, db.Create(&models.Like{PostID: ownPost.ID, UserID: other.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: ownPost.ID, UserID: other.ID, Text: "nice"}).Error)
	require.NoError(t, db.Create(&models.Like{PostID: otherPost.ID, UserID: owner.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: otherPost.ID, UserID: owner.ID, Text: "thanks"}).Error)

	require.NoError(t, repo.DeleteAccount(testCtx(), owner.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", owner.ID).Count(&count)
	assert.Zero(t, count, "user should be gone")
	db.Model(&models.Profile{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count, "profile should be gone")
	db.Model(&models.Experience{}).Where("profile_id = ?", profile.ID).Count(&count)
	assert.Zero(t, count, "experience entries should be gone")
	db.Model(&models.Education{}).Where("profile_id = ?", profile.ID).Count(&count)
	assert.Zero(t, count, "education entries should be gone")
	db.Model(&models.Post{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count, "posts should be gone")
	db.Model(&models.Like{}).Where("post_id = ?", ownPost.ID).Count(&count)
	assert.Zero(t, count, "likes on deleted posts should be gone")
	db.Model(&models.Comment{}).Where("post_id = ?", ownPost.ID).Count(&count)
	assert.Zero(t, count, "comments on deleted posts should be gone")
	db.Model(&models.Like{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count, "the user's likes elsewhere should be gone")
	db.Model(&models.Comment{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count, "the user's comments elsewhere should be gone")

	// The other user and their post survive.
	db.Model(&models.User{}).Where("id = ?", other.ID).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.Post{}).Where("id = ?", otherPost.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_DeleteAccount_MissingUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, noCache())

	err := repo.DeleteAccount(testCtx(), 404)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
