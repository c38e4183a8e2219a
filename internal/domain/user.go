package domain

import (
	"context"
	"time"
)

// Role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SystemUser signs history entries written by automated processes.
const SystemUser = "System"

type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL,omitempty"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the user may run privileged operations.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity is what the identity provider vouches for after sign-in.
type Identity struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"picture"`
}

// Session is the server-side record behind a session token.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignInResult is handed back to the client after a successful sign-in.
type SignInResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// IdentityVerifier checks an identity-provider token.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// SessionRepository persists sessions under SessionKeyPrefix.
// Get returns ErrNotFound for missing or expired sessions.
type SessionRepository interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionKeyPrefix is the fixed key name sessions are stored under.
const SessionKeyPrefix = "young_ats_user"

type AuthUsecase interface {
	// Authorize derives a role for the identity or rejects it.
	Authorize(identity Identity) (*User, error)
	SignIn(ctx context.Context, idToken string) (*SignInResult, error)
	// Hydrate resolves a session token back to its live session.
	Hydrate(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, sessionID string) error
}
