package models

import "time"

// User represents a user account in the system.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	DateJoined   time.Time `json:"dateJoined"`
}

// SafeUser is the only user representation that crosses the service
// boundary. It carries no password material.
type SafeUser struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	DateJoined time.Time `json:"dateJoined"`
}

// Safe returns the password-free projection of the user.
func (u User) Safe() SafeUser {
	return SafeUser{
		ID:         u.ID,
		Username:   u.Username,
		DateJoined: u.DateJoined,
	}
}

// UserUpdate holds the fields of a partial user update. Nil fields are
// left untouched.
type UserUpdate struct {
	Password *string `json:"password,omitempty"`
}
