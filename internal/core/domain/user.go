package domain

import (
	"strings"
	"time"
)

// Role is the authorization level carried by a user and embedded in tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts only the exact enum spelling. Used when decoding tokens.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// RoleFromSignup is lenient: case-insensitive, and empty or unknown values
// fall back to RoleUser.
func RoleFromSignup(s string) Role {
	if r, ok := ParseRole(strings.ToUpper(strings.TrimSpace(s))); ok {
		return r
	}
	return RoleUser
}

// User models an account that can log in.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal returns the request-level view of the user.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Username: u.Username, Role: u.Role}
}
