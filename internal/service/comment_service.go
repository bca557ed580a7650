package service

import (
	"context"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

func NewCommentService(postRepo repository.PostRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{postRepo: postRepo, userRepo: userRepo}
}

// CreateComment adds a comment carrying a snapshot of the commenter's name
// and avatar, and returns the post's refreshed comment list, newest first.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) ([]models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		UserID: in.UserID,
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// DeleteComment removes the comment and returns the post's refreshed comment
// list. Only the comment's author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) ([]models.Comment, error) {
	comment, err := s.postRepo.GetComment(ctx, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("User not authorized")
	}
	if err := s.postRepo.DeleteComment(ctx, in.PostID, in.CommentID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}
