package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a user.
type Role string

const (
	RoleUser      Role = "User"
	RoleAdmin     Role = "Admin"
	RoleSuperuser Role = "Superuser"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperuser:
		return true
	}
	return false
}

// User represents a user in the system.
type User struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	LocationID   *uuid.UUID `json:"location_id,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserRequest is the payload of the add and edit user forms.
type UserRequest struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Password   string     `json:"password,omitempty"`
	Role       Role       `json:"role"`
	LocationID *uuid.UUID `json:"location_id,omitempty"`
	Phone      string     `json:"phone,omitempty"`
}

// UserFilter narrows a user listing.
type UserFilter struct {
	Search     string
	Role       Role
	LocationID *uuid.UUID
	Limit      int
	Offset     int
}

// LoginRequest holds the login form fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Suggestion is a single autocomplete entry.
type Suggestion struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}
