package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// =====================================================
// BACKEND CLIENT
// =====================================================

const defaultTimeout = 10 * time.Second

// TokenSource yields the bearer token to attach to every backend call.
// The session manager is the only implementation in production; tests
// plug in a static token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource with a fixed value.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}

// Client is the thin HTTP client for the GOIA backend REST API.
// It never retries: create operations are not idempotent and a blind
// retry risks duplicate items, so retrying is always a caller decision.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a backend client with a fixed request timeout.
// A timeout of zero falls back to the 10s default from the API contract.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope mirrors the backend's JSON response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *envelopeError  `json:"error,omitempty"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// doJSON executes one request against the backend and decodes the data
// portion of the envelope into out (when out is non-nil).
//
// Every call site resolves to either a success value or one of the
// documented error kinds - there is no third outcome.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return NewAuthError("")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connection failures are the same thing to the
		// caller: the backend was unreachable, retry is up to them.
		return NewNetworkError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(fmt.Errorf("failed to read response: %w", err))
	}

	if err := c.checkStatus(resp.StatusCode, bodyBytes); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return NewNetworkError(fmt.Errorf("failed to unmarshal response: %w", err))
	}
	if len(env.Data) == 0 {
		// A present-but-empty collection arrives as data:[]; a missing
		// body here means the backend broke its own contract.
		return NewNetworkError(fmt.Errorf("empty data in backend response"))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return NewNetworkError(fmt.Errorf("failed to unmarshal data: %w", err))
	}
	return nil
}

// GetJSON fetches path and decodes the envelope's data into out.
func (c *Client) GetJSON(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON posts body to path and decodes the envelope's data into out.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// PutJSON puts body to path and decodes the envelope's data into out.
func (c *Client) PutJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// DeleteJSON deletes path; the response body is discarded.
func (c *Client) DeleteJSON(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// checkStatus maps non-2xx responses onto the error taxonomy.
func (c *Client) checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	message := ""
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		message = env.Error.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		// Never retried with the same token; the session layer tears down.
		return NewAuthError(message)
	case status == http.StatusNotFound:
		return NewNotFoundError(message)
	case status == http.StatusBadRequest ||
		status == http.StatusUnprocessableEntity ||
		status == http.StatusConflict:
		if message == "" {
			message = "The backend rejected the request"
		}
		return NewValidationError(message)
	default:
		return NewNetworkError(fmt.Errorf("backend returned status %d", status))
	}
}
