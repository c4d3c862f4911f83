package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goiashop-bff/internal/session"
)

type memStore struct {
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: map[string][]byte{}}
}

func (m *memStore) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	return nil
}

func (m *memStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memStore) Ping(ctx context.Context) error { return nil }

func testRouter(sessions *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ClientID(false))

	router.GET("/customer", CustomerSession(sessions), func(c *gin.Context) {
		sess, _ := session.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": sess.Profile.ID})
	})
	router.GET("/backoffice", BackofficeSession(sessions, "admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func establish(t *testing.T, sessions *session.Manager, clientID string, kind session.Kind, role string) {
	t.Helper()
	_, err := sessions.Establish(context.Background(), clientID, kind, "tok",
		session.Profile{ID: "u-1", Role: role})
	require.NoError(t, err)
}

func request(router *gin.Engine, path, clientID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if clientID != "" {
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: clientID})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestClientIDAssignsCookie(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	router := testRouter(sessions)

	rec := request(router, "/customer", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Even a rejected request gets a browser identity for next time.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, ClientCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestCustomerRouteRequiresSession(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	router := testRouter(sessions)

	rec := request(router, "/customer", "browser-1")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_SESSION")
}

func TestCustomerRouteAcceptsCustomerSession(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	router := testRouter(sessions)
	establish(t, sessions, "browser-1", session.KindCustomer, "customer")

	rec := request(router, "/customer", "browser-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "u-1")
}

func TestWrongSessionKindIsForbidden(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	router := testRouter(sessions)
	establish(t, sessions, "browser-1", session.KindCustomer, "customer")

	rec := request(router, "/backoffice", "browser-1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "WRONG_SESSION_KIND")
}

func TestBackofficeRoleAllowList(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	router := testRouter(sessions)
	establish(t, sessions, "browser-1", session.KindBackoffice, "stockist")

	rec := request(router, "/backoffice", "browser-1")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestBackofficeAdminAllowed(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	router := testRouter(sessions)
	establish(t, sessions, "browser-1", session.KindBackoffice, "admin")

	rec := request(router, "/backoffice", "browser-1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

// When the backend rejects the token the handler answers 401; the
// middleware must clear the stored session so the next request starts a
// clean sign-in instead of replaying dead credentials.
func TestBackendRejectionTearsSessionDown(t *testing.T) {
	sessions := session.NewManager(newMemStore(), time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ClientID(false))
	router.GET("/expired", CustomerSession(sessions), func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false})
	})

	establish(t, sessions, "browser-1", session.KindCustomer, "customer")

	rec := request(router, "/expired", "browser-1")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err := sessions.Current(context.Background(), "browser-1")
	assert.True(t, session.IsNoSession(err), "rejected credentials must not survive")
}
