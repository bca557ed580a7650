package server

import (
	"encoding/json"
	"time"

	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetProfiles handles GET /api/v1/profile
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.GetAllProfiles(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if len(profiles) == 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("There are no profiles"))
	}
	return models.Respond(c, fiber.StatusOK, "success", profiles)
}

// UpsertProfile handles POST /api/v1/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req struct {
		Company        string          `json:"company"`
		Website        string          `json:"website"`
		Location       string          `json:"location"`
		Status         string          `json:"status"`
		Skills         json.RawMessage `json:"skills"`
		Bio            string          `json:"bio"`
		GithubUsername string          `json:"githubusername"`
		Youtube        string          `json:"youtube"`
		Twitter        string          `json:"twitter"`
		Facebook       string          `json:"facebook"`
		Linkedin       string          `json:"linkedin"`
		Instagram      string          `json:"instagram"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpsertProfile(c.Context(), service.UpsertProfileInput{
		UserID:         userID(c),
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", profile)
}

// GetMyProfile handles GET /api/v1/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetMyProfile(c.Context(), userID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", profile)
}

// GetProfileByUserID handles GET /api/v1/profile/user/:user_id
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	id, err := parseID(c, "user_id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	profile, err := s.profileService.GetProfileByUserID(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", profile)
}

// DeleteAccount handles DELETE /api/v1/profile/user/:user_id
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	id, err := parseID(c, "user_id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if id != userID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("User not authorized"))
	}
	if err := s.profileService.DeleteAccount(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusAccepted, "success", nil)
}

// AddExperience handles PUT /api/v1/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	profile, err := s.profileService.AddExperience(c.Context(), service.AddExperienceInput{
		UserID:      userID(c),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", profile)
}

// RemoveExperience handles DELETE /api/v1/profile/experience/:exp_id
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	expID, err := parseID(c, "exp_id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	profile, err := s.profileService.RemoveExperience(c.Context(), userID(c), expID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", profile)
}

// AddEducation handles POST /api/v1/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	profile, err := s.profileService.AddEducation(c.Context(), service.AddEducationInput{
		UserID:       userID(c),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", profile)
}

// RemoveEducation handles DELETE /api/v1/profile/education/:edu_id
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	eduID, err := parseID(c, "edu_id")
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	profile, err := s.profileService.RemoveEducation(c.Context(), userID(c), eduID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", profile)
}

// GetGithubRepos handles GET /api/v1/profile/github/:username
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}
	repos, err := s.githubAPI.LatestRepos(c.Context(), username)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "success", repos)
}

// parseDateRange parses the from/to dates of experience and education
// entries, accepting either date-only or RFC 3339 values.
func parseDateRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	var from time.Time
	if fromRaw != "" {
		parsed, err := parseDate(fromRaw)
		if err != nil {
			return time.Time{}, nil, models.NewValidationError("Invalid from date")
		}
		from = parsed
	}
	if toRaw == "" {
		return from, nil, nil
	}
	to, err := parseDate(toRaw)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("Invalid to date")
	}
	return from, &to, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
