package session

import "time"

// Kind distinguishes a customer-facing login from an internal backoffice
// login. The two are mutually exclusive for one browser identity.
type Kind string

const (
	KindCustomer   Kind = "customer"
	KindBackoffice Kind = "backoffice"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindCustomer, KindBackoffice:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Profile is the snapshot of the signed-in user the backend returned at
// login time. The backend stays authoritative; this copy only feeds the
// UI and the role checks.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // customer | admin | stockist
}

// Session is everything the BFF persists for one signed-in browser:
// the bearer token, the profile snapshot and the session kind.
type Session struct {
	ClientID  string    `json:"client_id"`
	Kind      Kind      `json:"kind"`
	Token     string    `json:"token"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the backend token has run out.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
