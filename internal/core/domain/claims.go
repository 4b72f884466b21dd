package domain

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed fact set carried by an auth token: subject (username),
// validity window, and the granted roles joined by a single space.
type Claims struct {
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

// RoleList splits the space-joined roles claim into individual role names.
func (c *Claims) RoleList() []string {
	return strings.Fields(c.Roles)
}

// ValidAt reports whether now falls inside the [issued_at, expires_at)
// window. Signature verification is the codec's job; this predicate is the
// explicit expiry check the gate performs after a successful decode.
func (c *Claims) ValidAt(now time.Time) bool {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.IssuedAt.Time) && now.Before(c.ExpiresAt.Time)
}

// Identity derives the request-scoped principal from validated claims.
func (c *Claims) Identity() Identity {
	return Identity{Username: c.Subject, Roles: c.RoleList()}
}
