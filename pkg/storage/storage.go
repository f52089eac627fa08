package storage

import (
	"context"
	"errors"

	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

// ErrLockTimeout is returned when a session lock cannot be acquired before
// the context ends.
var ErrLockTimeout = errors.New("timed out waiting for session lock")

// SessionKey identifies one player on one chat platform.
type SessionKey struct {
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
}

func (k SessionKey) String() string {
	return k.Platform + ":" + k.UserID
}

// Valid reports whether both parts of the key are set.
func (k SessionKey) Valid() bool {
	return k.Platform != "" && k.UserID != ""
}

// SessionStore persists game sessions.
type SessionStore interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// LoadSession returns nil, nil when no session is stored for key.
	LoadSession(ctx context.Context, key SessionKey) (*state.Session, error)
	SaveSession(ctx context.Context, key SessionKey, s *state.Session) error
	DeleteSession(ctx context.Context, key SessionKey) error
}

// Locker serializes work on a single session key.
type Locker interface {
	// Lock blocks until key is held or ctx ends. The returned func releases
	// the lock and is safe to call more than once.
	Lock(ctx context.Context, key SessionKey) (unlock func(), err error)
}
