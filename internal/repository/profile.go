package repository

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles and their
// embedded experience and education entries.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	AddExperience(ctx context.Context, profileID uint, exp *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID uint) error
	AddEducation(ctx context.Context, profileID uint, edu *models.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uint) error
}

type profileRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB, c *cache.Cache) ProfileRepository {
	return &profileRepository{db: db, cache: c}
}

// Upsert creates the profile or replaces the existing one keyed by user_id,
// in a single statement.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	r.cache.Invalidate(ctx, cache.ProfileKey(profile.UserID), cache.ProfilesListKey)
	return r.GetByUserID(ctx, profile.UserID)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.withEntries(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.cache.Aside(ctx, cache.ProfilesListKey, &profiles, cache.ListTTL, func() error {
		return r.withEntries(r.db.WithContext(ctx)).
			Order("created_at DESC").
			Find(&profiles).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

// withEntries preloads the profile owner's public fields and the embedded
// entry lists. Entries are ordered newest-added-first: prepend semantics.
func (r *profileRepository) withEntries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("experiences.id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("educations.id DESC")
		})
}

func (r *profileRepository) AddExperience(ctx context.Context, profileID uint, exp *models.Experience) error {
	exp.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

// RemoveExperience drops the matching entry. A missing entry id is not an
// error; the list is simply left unchanged.
func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, expID uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profileID).
		Delete(&models.Experience{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, profileID uint, edu *models.Education) error {
	edu.ProfileID = profileID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

// RemoveEducation drops the matching entry, failing with NotFound when the
// entry id does not exist on the profile.
func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, eduID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profileID).
		Delete(&models.Education{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Education not found")
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) invalidateByProfileID(ctx context.Context, profileID uint) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Select("user_id").First(&profile, profileID).Error; err == nil {
		r.cache.Invalidate(ctx, cache.ProfileKey(profile.UserID))
	}
	r.cache.Invalidate(ctx, cache.ProfilesListKey)
}
