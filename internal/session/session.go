package session

import (
	"context"
	"errors"
	"time"
)

// Profile is the authenticated user as the backend reports it.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	Address3    string `json:"address3"`
	Image       string `json:"image"`
}

const RoleAdmin = "admin"

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DefaultAddress returns the first non-empty address slot.
func (p Profile) DefaultAddress() string {
	for _, a := range []string{p.Address1, p.Address2, p.Address3} {
		if a != "" {
			return a
		}
	}
	return ""
}

// Session binds a session id to a backend bearer token and profile.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions across instances.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
