package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"goiashop-bff/internal/session"
)

// ClientCookie identifies one browser across reloads; it is not a
// credential, just the key the session store is indexed by.
const ClientCookie = "goia_sid"

const cookieMaxAge = 30 * 24 * 60 * 60

// ClientID ensures every request carries a browser identity cookie.
func ClientID(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(ClientCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(ClientCookie, id, cookieMaxAge, "/", "", secure, true)
		}
		c.Set("client_id", id)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "NO_SESSION",
			"message": "Not signed in",
		},
	})
	c.Abort()
}

// CustomerSession loads the active session, requires it to be a customer
// one and attaches it to the request context.
func CustomerSession(sessions *session.Manager) gin.HandlerFunc {
	return requireKind(sessions, session.KindCustomer, nil)
}

// BackofficeSession requires a backoffice session whose role is on the
// allow-list (admin, stockist). An empty list admits any backoffice role.
func BackofficeSession(sessions *session.Manager, roles ...string) gin.HandlerFunc {
	return requireKind(sessions, session.KindBackoffice, roles)
}

func requireKind(sessions *session.Manager, kind session.Kind, roles []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetString("client_id")
		if clientID == "" {
			abortUnauthenticated(c)
			return
		}

		sess, err := sessions.Current(c.Request.Context(), clientID)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		if sess.Kind != kind {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "WRONG_SESSION_KIND",
					"message": "This area requires a " + kind.String() + " session",
				},
			})
			c.Abort()
			return
		}

		if len(roles) > 0 && !roleAllowed(sess.Profile.Role, roles) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Access denied: insufficient role",
				},
			})
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		c.Set("session", sess)
		c.Next()

		// A 401 out of a handler means the backend rejected the token.
		// The stored credentials are worthless now; clear them so the
		// next request starts a clean sign-in instead of looping.
		if c.Writer.Status() == http.StatusUnauthorized {
			if err := sessions.Teardown(c.Request.Context(), clientID); err != nil {
				log.Warn().Err(err).Str("client_id", clientID).Msg("failed to tear down rejected session")
			}
		}
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
