package server

import (
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/v1/posts/comment/:id
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comments, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID: userID(c),
		PostID: postID,
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "success", comments)
}

// DeleteComment handles DELETE /api/v1/posts/comment/:id/:comment_id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	comments, err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    userID(c),
		PostID:    postID,
		CommentID: commentID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", comments)
}
