package domain

import (
	"time"
)

type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	DisplayName      string     `json:"display_name"`
	PasswordHash     string     `json:"-"`
	RefreshTokenHash *string    `json:"-"`
	Active           bool       `json:"active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// Sanitized returns a copy with the password hash and the refresh token
// hash stripped. Only sanitized users cross the service boundary.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	u.RefreshTokenHash = nil
	return &u
}
