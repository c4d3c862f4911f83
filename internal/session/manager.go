package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const keyPrefix = "session:"

// Manager is the single read/write boundary for session state. No other
// component touches the store directly; everything goes through here.
type Manager struct {
	store      Store
	defaultTTL time.Duration
}

// NewManager creates the session boundary. defaultTTL caps how long a
// session may live when the backend token carries no usable expiry.
func NewManager(store Store, defaultTTL time.Duration) *Manager {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &Manager{
		store:      store,
		defaultTTL: defaultTTL,
	}
}

// tokenClaims is what we read out of the backend-issued JWT. The backend
// owns the signing key, so the parse is unverified by design: the token's
// only consumer of record is the backend itself, we just need expiry and
// role for local bookkeeping.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func tokenExpiry(token string) time.Time {
	claims := &tokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Establish stores a fresh session after a successful backend login.
// A customer session and a backoffice session are mutually exclusive:
// while one kind is active for this browser, establishing the other is
// rejected and requires an explicit logout first.
func (m *Manager) Establish(ctx context.Context, clientID string, kind Kind, token string, profile Profile) (*Session, error) {
	var existing Session
	found, err := m.store.Get(ctx, keyPrefix+clientID, &existing)
	if err != nil {
		return nil, NewStoreError(err)
	}
	if found && !existing.Expired(time.Now()) && existing.Kind != kind {
		return nil, NewKindConflict(existing.Kind)
	}

	now := time.Now()
	expiresAt := tokenExpiry(token)
	ttl := m.defaultTTL
	if !expiresAt.IsZero() {
		if remaining := time.Until(expiresAt); remaining > 0 && remaining < ttl {
			ttl = remaining
		}
	} else {
		expiresAt = now.Add(m.defaultTTL)
	}

	sess := &Session{
		ClientID:  clientID,
		Kind:      kind,
		Token:     token,
		Profile:   profile,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := m.store.Set(ctx, keyPrefix+clientID, sess, ttl); err != nil {
		return nil, NewStoreError(err)
	}
	return sess, nil
}

// Current returns the active session for this browser, or NoSession.
func (m *Manager) Current(ctx context.Context, clientID string) (*Session, error) {
	var sess Session
	found, err := m.store.Get(ctx, keyPrefix+clientID, &sess)
	if err != nil {
		return nil, NewStoreError(err)
	}
	if !found {
		return nil, NewNoSession()
	}
	if sess.Expired(time.Now()) {
		// Expired credentials are cleared, never silently reused.
		_ = m.store.Delete(ctx, keyPrefix+clientID)
		return nil, NewNoSession()
	}
	return &sess, nil
}

// Teardown clears the locally held credentials. Called on explicit
// logout and whenever the backend answers 401.
func (m *Manager) Teardown(ctx context.Context, clientID string) error {
	if err := m.store.Delete(ctx, keyPrefix+clientID); err != nil {
		return NewStoreError(err)
	}
	return nil
}
