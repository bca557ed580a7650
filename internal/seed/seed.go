// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern", "Other",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL", "HTML", "CSS",
	"React", "Vue", "Docker", "Kubernetes", "PostgreSQL", "Redis", "AWS",
	"GraphQL", "gRPC", "Linux", "Git", "Terraform",
}

// Seeder populates the database with fake data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a seeder bound to a database handle.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll empties every table, children first.
func (s *Seeder) ClearAll() error {
	log.Println("Cleaning database...")
	tables := []any{
		&models.Like{}, &models.Comment{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	}
	for _, t := range tables {
		if err := s.db.Where("1 = 1").Delete(t).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", t, err)
		}
	}
	return nil
}

// SeedUsers creates n users with profiles. All users share the password
// "password123".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s%d@%s",
			strings.ToLower(strings.ReplaceAll(name, " ", ".")), i, gofakeit.DomainName())
		user := models.User{
			Name:     name,
			Email:    email,
			Password: string(hash),
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}

		profile := models.Profile{
			UserID:         user.ID,
			Company:        gofakeit.Company(),
			Website:        "https://" + gofakeit.DomainName(),
			Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			Status:         statuses[rand.Intn(len(statuses))],
			Skills:         randomSkills(),
			Bio:            gofakeit.Paragraph(1, 2, 8, " "),
			GithubUsername: gofakeit.Username(),
			Social: models.SocialLinks{
				Twitter:  "https://twitter.com/" + gofakeit.Username(),
				Linkedin: "https://linkedin.com/in/" + gofakeit.Username(),
			},
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("creating profile for user %d: %w", user.ID, err)
		}

		from := gofakeit.DateRange(
			time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0))
		exp := models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     true,
			Description: gofakeit.Sentence(12),
		}
		if err := s.db.Create(&exp).Error; err != nil {
			return nil, fmt.Errorf("creating experience: %w", err)
		}

		users = append(users, user)
	}
	log.Printf("Created %d users with profiles", len(users))
	return users, nil
}

// SeedPosts creates n posts by random users, each with a few likes and
// comments from other random users.
func (s *Seeder) SeedPosts(users []models.User, n int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to post as")
	}

	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UserID: author.ID,
			Text:   gofakeit.Paragraph(1, 3, 10, " "),
			Name:   author.Name,
			Avatar: author.Avatar,
		}
		if err := s.db.Create(&post).Error; err != nil {
			return fmt.Errorf("creating post %d: %w", i, err)
		}

		for _, u := range pickUsers(users, rand.Intn(5)) {
			like := models.Like{PostID: post.ID, UserID: u.ID}
			if err := s.db.Create(&like).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
		for _, u := range pickUsers(users, rand.Intn(3)) {
			comment := models.Comment{
				PostID: post.ID,
				UserID: u.ID,
				Text:   gofakeit.Sentence(10),
				Name:   u.Name,
				Avatar: u.Avatar,
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}
	log.Printf("Created %d posts", n)
	return nil
}

func randomSkills() []string {
	n := 3 + rand.Intn(5)
	perm := rand.Perm(len(skillPool))
	skills := make([]string, 0, n)
	for _, idx := range perm[:n] {
		skills = append(skills, skillPool[idx])
	}
	return skills
}

// pickUsers returns up to n distinct random users.
func pickUsers(users []models.User, n int) []models.User {
	if n > len(users) {
		n = len(users)
	}
	perm := rand.Perm(len(users))
	picked := make([]models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}
