package repository

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"

	"gorm.io/gorm"
)

// ErrAlreadyLiked is returned when a user likes a post they already liked.
var ErrAlreadyLiked = models.NewConflictError("Post already liked")

// ErrNotLiked is returned when a user unlikes a post they have not liked.
var ErrNotLiked = models.NewConflictError("Post has not yet been liked")

// PostRepository defines persistence operations for posts and their embedded
// likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	AddComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID uint) error
}

type postRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB, c *cache.Cache) PostRepository {
	return &postRepository{db: db, cache: c}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withEmbedded(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("No post found")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withEmbedded(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// withEmbedded preloads likes and comments, both newest-first.
func (r *postRepository) withEmbedded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id DESC")
		})
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	r.cache.Invalidate(ctx, cache.PostKey(id))
	return nil
}

// Like records the like atomically. INSERT ... ON CONFLICT DO NOTHING avoids
// the read-modify-write race between concurrent likes; zero rows affected
// means the (post, user) pair already existed.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyLiked
	}
	r.cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

// Unlike removes the like atomically; zero rows affected means the user had
// not liked the post.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotLiked
	}
	r.cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.cache.Invalidate(ctx, cache.PostKey(comment.PostID))
	return nil
}

func (r *postRepository) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment does not exist")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, postID, commentID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment does not exist")
	}
	r.cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}
