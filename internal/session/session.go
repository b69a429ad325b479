// Package session owns the authenticated-user state: the credential
// snapshot, login/logout transitions, redirect-target tracking, and the
// stale-response guard epoch.
//
// Mutations happen only on the event-handling goroutine; the internal lock
// exists so a concurrent reader (the expiry watcher) can never observe a
// half-updated session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/logging"
	"storefront/internal/models"
)

// defaultTTL bounds how long a persisted session survives when the token
// carries no exp claim.
const defaultTTL = 30 * 24 * time.Hour

// Store persists the session record, separately from the cart and with its
// own expiry policy. *store.Bridge satisfies it.
type Store interface {
	SaveSession(ctx context.Context, user models.User, expiresAt time.Time) error
	LoadSession(ctx context.Context) (models.User, bool)
	ClearSession(ctx context.Context) error
}

// Manager is the exclusive owner of the auth session. Other components only
// read it.
type Manager struct {
	mu       sync.RWMutex
	user     *models.User
	epoch    uint64
	redirect string

	store Store
	log   logging.Logger
	now   func() time.Time
}

// NewManager returns an unauthenticated manager.
func NewManager(store Store, log logging.Logger) *Manager {
	return &Manager{store: store, log: log, now: time.Now}
}

// Restore rehydrates a persisted session at startup. A session whose token
// already expired is discarded through the same path as a logout record.
func (m *Manager) Restore(ctx context.Context) {
	user, ok := m.store.LoadSession(ctx)
	if !ok {
		return
	}
	if exp, found := TokenExpiry(user.Token); found && m.now().After(exp) {
		m.log.Info(ctx, "restored session token already expired, discarding")
		_ = m.store.ClearSession(ctx)
		return
	}

	m.mu.Lock()
	m.user = &user
	m.epoch++
	m.mu.Unlock()
}

// SetCredentials stores user as the active session, replacing any prior
// session atomically, and persists it. The persisted record expires when the
// token does, or after a fixed TTL when the token has no exp claim.
func (m *Manager) SetCredentials(ctx context.Context, user models.User) error {
	m.mu.Lock()
	u := user
	m.user = &u
	m.epoch++
	m.mu.Unlock()

	expiresAt, found := TokenExpiry(user.Token)
	if !found {
		expiresAt = m.now().Add(defaultTTL)
	}
	if err := m.store.SaveSession(ctx, user, expiresAt); err != nil {
		m.log.Warn(ctx, "failed to persist session", "error", err)
		return err
	}
	return nil
}

// Logout clears the session and its persisted record. Cart cleanup is
// chained by the caller: checkout data in progress must not carry over to
// the next user of a shared device.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.redirect = ""
	m.epoch++
	m.mu.Unlock()

	if err := m.store.ClearSession(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear persisted session", "error", err)
		return err
	}
	return nil
}

// Current returns a snapshot of the authenticated user, if any.
func (m *Manager) Current() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Current()
	return ok
}

// Token returns the current bearer token, or "". It satisfies
// api.TokenSource.
func (m *Manager) Token() string {
	u, ok := m.Current()
	if !ok {
		return ""
	}
	return u.Token
}

// Epoch returns the stale-response guard token. Handlers snapshot it before
// a network call and discard the response if the epoch moved while the call
// was in flight (the session changed underneath it).
func (m *Manager) Epoch() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch
}

// TokenExpired reports whether the active session's token has an exp claim
// in the past. An unauthenticated manager reports false.
func (m *Manager) TokenExpired() bool {
	u, ok := m.Current()
	if !ok {
		return false
	}
	exp, found := TokenExpiry(u.Token)
	return found && m.now().After(exp)
}

// SetRedirect records where the user was heading when bounced to sign-in.
func (m *Manager) SetRedirect(target string) {
	m.mu.Lock()
	m.redirect = target
	m.mu.Unlock()
}

// TakeRedirect returns and clears the recorded redirect target.
func (m *Manager) TakeRedirect() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	target := m.redirect
	m.redirect = ""
	return target
}

// TokenExpiry extracts the exp claim from a JWT without verifying its
// signature. Verification is the server's job; the client only uses exp to
// notice a stale session early instead of waiting for a 401.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
