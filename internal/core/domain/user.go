package domain

import (
	"strings"
	"time"
)

// User models an account in the system. Identity is the username, not the
// surrogate ID: two users denote the same account iff their usernames match.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Is reports whether the account belongs to username. Usernames are compared
// case-insensitively, matching the uniqueness rule of the store.
func (u *User) Is(username string) bool {
	return strings.EqualFold(u.Username, username)
}
