// Package session ties HTTP clients to user ids through server-side session
// records and a signed cookie that carries only the session id.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/profilehub/profilehub-go/internal/crypto"
)

const (
	DefaultTTL        = 7 * 24 * time.Hour
	DefaultCookieName = "profilehub_session"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrNoSession = errors.New("no valid session")
)

// Session maps a server-issued id to a user id until ExpiresAt.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Ticket is what a client receives when a session starts.
type Ticket struct {
	Token     string
	ExpiresAt time.Time
}

// Options configures a Manager.
type Options struct {
	TTL          time.Duration
	CookieName   string
	SecureCookie bool
}

// Manager issues, resolves and revokes sessions.
type Manager struct {
	store  Store
	secret string
	opts   Options
	now    func() time.Time
}

// NewManager creates a Manager. Zero option values fall back to the defaults.
func NewManager(store Store, secret string, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return &Manager{
		store:  store,
		secret: secret,
		opts:   opts,
		now:    time.Now,
	}
}

// Issue starts a new session for userID.
func (m *Manager) Issue(ctx context.Context, userID string) (Ticket, error) {
	id, err := crypto.NewSessionID()
	if err != nil {
		return Ticket{}, err
	}

	expiresAt := m.now().Add(m.opts.TTL)
	if err := m.store.Create(ctx, Session{ID: id, UserID: userID, ExpiresAt: expiresAt}); err != nil {
		return Ticket{}, fmt.Errorf("storing session: %w", err)
	}

	token, err := crypto.SignSession(id, m.secret, expiresAt)
	if err != nil {
		return Ticket{}, fmt.Errorf("signing session: %w", err)
	}

	return Ticket{Token: token, ExpiresAt: expiresAt}, nil
}

// Resolve returns the user id bound to token, or ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNoSession
	}

	id, err := crypto.ParseSession(token, m.secret)
	if err != nil {
		return "", ErrNoSession
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("loading session: %w", err)
	}

	if !m.now().Before(s.ExpiresAt) {
		if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			slog.WarnContext(ctx, "failed to delete expired session", "error", err)
		}
		return "", ErrNoSession
	}

	return s.UserID, nil
}

// Revoke deletes the session behind token. Unknown or invalid tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	id, err := crypto.ParseSession(token, m.secret)
	if err != nil {
		return nil
	}

	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.store.PurgeExpired(ctx, m.now())
			if err != nil {
				slog.Warn("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("purged expired sessions", "count", n)
			}
		}
	}
}
