package domain

import (
	"strings"
	"time"
)

// UserKind tags which collection a user lives in.
type UserKind string

const (
	KindCustomer UserKind = "customer"
	KindAdmin    UserKind = "admin"
)

// Role claims carried by admin session tokens. Customer tokens carry no role.
const (
	RoleSuperAdmin = "SA"
	RoleAdmin      = "A"
)

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// User models both customers and admins; Kind decides which fields are meaningful.
type User struct {
	ID             string    `json:"user_id"`
	Kind           UserKind  `json:"-"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	PasswordHash   string    `json:"-"`
	ResetTokenHash string    `json:"-"`
	ResetExpiresAt time.Time `json:"-"`
	IsSuperAdmin   bool      `json:"is_super_admin,omitempty"`
	Status         string    `json:"status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName is the name shown next to comments and in notification mails.
func (u *User) DisplayName() string {
	if u.Kind == KindAdmin {
		return u.Name
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Role returns the role claim for the user's session token.
func (u *User) Role() string {
	if u.Kind != KindAdmin {
		return ""
	}
	if u.IsSuperAdmin {
		return RoleSuperAdmin
	}
	return RoleAdmin
}

// HasPendingReset reports whether a reset token was issued and has not yet expired.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != "" && now.Before(u.ResetExpiresAt)
}

// Claims is the decoded content of a bearer token.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}
