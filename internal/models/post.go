package models

import (
	"time"
)

// Post represents a post on the feed. Name and Avatar are denormalized
// snapshots of the author at post time, kept even if the author later
// changes them (historical accuracy over live joins).
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Likes    []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`
}

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"user"`
	CreatedAt time.Time `json:"-"`
}

// Comment is an embedded comment on a post, carrying a denormalized
// snapshot of the commenter's name and avatar at comment time.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}
