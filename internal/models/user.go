// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Accounts are hard-deleted on
// explicit account deletion, never soft-deleted, so there is no DeletedAt.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
