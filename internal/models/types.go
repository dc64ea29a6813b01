// internal/models/types.go
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type SiteRole string

const (
	RoleAdministrator SiteRole = "administrator"
	RoleEditor        SiteRole = "editor"
	RoleSubscriber    SiteRole = "subscriber"
)

type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	SuperAdmin bool      `json:"super_admin"`
}

// Site is one site of the multisite network.
type Site struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

// SiteSummary is a site as seen through a user's membership of it.
type SiteSummary struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
	Role SiteRole  `json:"role"`
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrSiteNotFound       = errors.New("site not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrSiteExists         = errors.New("site already exists")
)

type LocalCredential struct {
	UserID       uuid.UUID
	Username     string
	PasswordHash string
}

type Session struct {
	UserID   uuid.UUID
	Provider string
	Expiry   time.Time
}
