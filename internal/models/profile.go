package models

import (
	"time"
)

// SocialLinks holds a profile's social network URLs. Stored inline on the
// profiles table as social_* columns.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is a user's public developer profile. Exactly one profile exists
// per user; creation is an upsert keyed by UserID.
type Profile struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;uniqueIndex" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company        string      `json:"company,omitempty"`
	Website        string      `json:"website,omitempty"`
	Location       string      `json:"location,omitempty"`
	Status         string      `gorm:"not null" json:"status"`
	Skills         []string    `gorm:"serializer:json" json:"skills"`
	Bio            string      `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string      `json:"githubusername,omitempty"`
	Social         SocialLinks `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience `gorm:"foreignKey:ProfileID" json:"experience"`
	Education      []Education  `gorm:"foreignKey:ProfileID" json:"education"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Experience is an embedded work-history entry on a profile.
// Entries are returned newest-first; the most recently added entry is
// always at the head of the list.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `gorm:"default:false" json:"current"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is an embedded education entry on a profile. Same ordering
// policy as Experience.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"fieldofstudy"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `gorm:"default:false" json:"current"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
