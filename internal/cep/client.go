package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// =====================================================
// POSTAL-LOOKUP CLIENT (ViaCEP-shaped)
// =====================================================

const defaultTimeout = 10 * time.Second

// Result holds the structured address fields a successful lookup yields.
// There is deliberately no complement here: the service never returns one
// and the form must preserve whatever the user typed into that field.
type Result struct {
	Code         string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// lookupResponse mirrors the service's wire shape. Not-found arrives as a
// 200 with an error marker whose type has drifted between bool and string
// over the service's lifetime, hence flexBool.
type lookupResponse struct {
	Result
	NotFound flexBool `json:"erro"`
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*b = flexBool(s == "true")
	return nil
}

// Normalize strips the display mask and anything else that is not a
// digit: "01001-000" -> "01001000".
func Normalize(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Client calls the public postal-code lookup service. Unauthenticated,
// keyed by the 8-digit code.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a lookup client against e.g. "https://viacep.com.br".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup resolves one already-normalized 8-digit code. Callers that deal
// with raw user input should go through Autofill instead.
func (c *Client) Lookup(ctx context.Context, code string) (*Result, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewLookupError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewLookupError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewLookupError(fmt.Errorf("lookup service returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewLookupError(err)
	}

	var decoded lookupResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, NewLookupError(err)
	}

	if bool(decoded.NotFound) {
		return nil, NewLookupMiss(code)
	}

	result := decoded.Result
	result.Code = code
	return &result, nil
}
