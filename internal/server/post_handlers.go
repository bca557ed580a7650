package server

import (
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/v1/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if len(posts) == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("There are no posts"))
	}
	return models.Respond(c, fiber.StatusOK, "success", posts)
}

// CreatePost handles POST /api/v1/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID: userID(c),
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "success", post)
}

// GetPost handles GET /api/v1/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", post)
}

// DeletePost handles DELETE /api/v1/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if err := s.postService.DeletePost(c.Context(), userID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusAccepted, "success", nil)
}

// LikePost handles PUT /api/v1/posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	likes, err := s.postService.LikePost(c.Context(), userID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", likes)
}

// UnlikePost handles PUT /api/v1/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	likes, err := s.postService.UnlikePost(c.Context(), userID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", likes)
}
