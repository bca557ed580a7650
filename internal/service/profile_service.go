// Package service contains the business rules sitting between HTTP handlers
// and repositories.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/repository"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

type UpsertProfileInput struct {
	UserID         uint
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         json.RawMessage
	Bio            string
	GithubUsername string
	Social         models.SocialLinks
}

type AddExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type AddEducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// UpsertProfile creates the caller's profile or replaces it wholesale.
// Omitted optional fields on an existing profile are cleared, not kept.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if strings.TrimSpace(in.Status) == "" {
		return nil, models.NewValidationError("Status is required")
	}
	skills, err := ParseSkills(in.Skills)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, models.NewValidationError("Skills is required")
	}

	profile := &models.Profile{
		UserID:         in.UserID,
		Company:        in.Company,
		Website:        normalizeURL(in.Website),
		Location:       in.Location,
		Status:         in.Status,
		Skills:         skills,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   normalizeURL(in.Social.Youtube),
			Twitter:   normalizeURL(in.Social.Twitter),
			Facebook:  normalizeURL(in.Social.Facebook),
			Linkedin:  normalizeURL(in.Social.Linkedin),
			Instagram: normalizeURL(in.Social.Instagram),
		},
	}
	return s.profileRepo.Upsert(ctx, profile)
}

func (s *ProfileService) GetAllProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

func (s *ProfileService) GetMyProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) AddExperience(ctx context.Context, in AddExperienceInput) (*models.Profile, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Company) == "" {
		return nil, models.NewValidationError("Company is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	exp := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile.ID, exp); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, in AddEducationInput) (*models.Profile, error) {
	if strings.TrimSpace(in.School) == "" {
		return nil, models.NewValidationError("School is required")
	}
	if strings.TrimSpace(in.Degree) == "" {
		return nil, models.NewValidationError("Degree is required")
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		return nil, models.NewValidationError("Field of study is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	edu := &models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile.ID, edu); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the user along with their profile, posts, likes and
// comments in one transaction.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.DeleteAccount(ctx, userID)
}

// ParseSkills accepts either a JSON array of strings or a single
// comma-separated string and returns the cleaned list.
func ParseSkills(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return cleanSkills(list), nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return cleanSkills(strings.Split(single, ",")), nil
	}

	return nil, models.NewValidationError("Skills must be a string or a list of strings")
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// normalizeURL forces an https scheme on user-supplied links so stored
// profiles never point at plain http.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "http://"):
		return "https://" + strings.TrimPrefix(raw, "http://")
	default:
		return "https://" + raw
	}
}
