package service

import (
	"context"

	"goiashop-bff/internal/gateway"
	"goiashop-bff/internal/session"
)

// loginPaths maps the session kind onto the backend login endpoint. The
// backend decides who may sign in where; this layer only routes.
var loginPaths = map[session.Kind]string{
	session.KindCustomer:   "/auth/login",
	session.KindBackoffice: "/auth/backoffice/login",
}

type loginResult struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

// Auth handles sign-in and sign-out against the backend and keeps the
// resulting session under the browser's client id.
type Auth struct {
	client   *gateway.Client
	sessions *session.Manager
}

func NewAuth(client *gateway.Client, sessions *session.Manager) *Auth {
	return &Auth{
		client:   client,
		sessions: sessions,
	}
}

// Login authenticates against the backend and establishes a session of
// the given kind. A live session of the other kind blocks the login
// until the user logs out of it; the two areas never share a browser.
func (s *Auth) Login(ctx context.Context, clientID string, kind session.Kind, email, password string) (*session.Session, error) {
	path, ok := loginPaths[kind]
	if !ok {
		return nil, gateway.NewValidationError("unknown session kind")
	}

	var result loginResult
	body := map[string]string{"email": email, "password": password}
	if err := s.client.PostJSON(ctx, path, body, &result); err != nil {
		return nil, err
	}

	return s.sessions.Establish(ctx, clientID, kind, result.Token, result.User)
}

// Logout drops the local session. The backend token is simply forgotten;
// the backend never learns about the logout and does not need to.
func (s *Auth) Logout(ctx context.Context, clientID string) error {
	return s.sessions.Teardown(ctx, clientID)
}

// Me returns the active session's profile snapshot.
func (s *Auth) Me(ctx context.Context, clientID string) (*session.Session, error) {
	return s.sessions.Current(ctx, clientID)
}
