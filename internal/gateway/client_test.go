package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendStub(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, StaticToken("test-token"), 0)
}

func TestDoJSONAttachesBearerToken(t *testing.T) {
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"success": true, "data": {"ok": true}}`)
	})

	var out map[string]bool
	require.NoError(t, client.GetJSON(context.Background(), "/ping", &out))
	assert.True(t, out["ok"])
}

func TestDoJSONEmptyTokenGoesOutUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"success": true, "data": {}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken(""), 0)
	var out map[string]any
	assert.NoError(t, client.GetJSON(context.Background(), "/public", &out))
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
		kind   Kind
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, IsAuthError, KindAuth},
		{"not found", http.StatusNotFound, `{}`, IsNotFoundError, KindNotFound},
		{"bad request", http.StatusBadRequest, `{}`, IsValidationError, KindValidation},
		{"unprocessable", http.StatusUnprocessableEntity, `{}`, IsValidationError, KindValidation},
		{"conflict", http.StatusConflict, `{}`, IsValidationError, KindValidation},
		{"server error", http.StatusInternalServerError, `{}`, IsNetworkError, KindNetwork},
		{"bad gateway", http.StatusBadGateway, `{}`, IsNetworkError, KindNetwork},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			})

			err := client.GetJSON(context.Background(), "/x", nil)
			require.Error(t, err)
			assert.True(t, tc.check(err))
			assert.Equal(t, string(tc.kind), GetErrorKind(err))
		})
	}
}

func TestValidationErrorCarriesServerMessage(t *testing.T) {
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"success": false, "error": {"code": "ADDR_001", "message": "CEP não encontrado"}}`)
	})

	err := client.GetJSON(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "CEP não encontrado", GetErrorMessage(err))
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, StaticToken(""), 0)
	err := client.GetJSON(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestTimeoutIsNetworkError(t *testing.T) {
	client := backendStub(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	client.httpClient.Timeout = 20 * time.Millisecond

	err := client.GetJSON(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestMapErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{NewAuthError(""), http.StatusUnauthorized, "AUTH_ERROR"},
		{NewValidationError("bad"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{NewNotFoundError(""), http.StatusNotFound, "NOT_FOUND"},
		{NewNetworkError(fmt.Errorf("down")), http.StatusBadGateway, "NETWORK_ERROR"},
	}
	for _, tc := range cases {
		status, _, code := MapErrorToHTTP(tc.err)
		assert.Equal(t, tc.status, status)
		assert.Equal(t, tc.code, code)
	}
}
