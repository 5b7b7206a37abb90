package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password; accounts created through
// Google sign-in may have an empty Password and a non-empty GoogleID.
type User struct {
	ID         string
	Email      string
	Password   string
	GoogleID   string
	Name       string
	AvatarURL  string
	Role       Role
	IsVerified bool
	Favorites  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeEmail lowers and trims an email address. Uniqueness on users.email
// is case-insensitive, so every lookup and insert goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsFavorite reports whether the perfume is in the user's favorites set.
func (u *User) IsFavorite(perfumeID string) bool {
	for _, id := range u.Favorites {
		if id == perfumeID {
			return true
		}
	}
	return false
}
