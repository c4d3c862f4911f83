package session

import "context"

type ctxKey int

const sessionKey ctxKey = iota

// WithSession attaches the active session to a request context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext extracts the session the middleware attached.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*Session)
	return sess, ok
}

// ContextTokens feeds the gateway client the bearer token of whichever
// session rides the request context. Requests without a session go out
// unauthenticated; the backend's 401 then surfaces as AuthError and the
// session boundary tears down.
type ContextTokens struct{}

func (ContextTokens) Token(ctx context.Context) (string, error) {
	if sess, ok := FromContext(ctx); ok {
		return sess.Token, nil
	}
	return "", nil
}
