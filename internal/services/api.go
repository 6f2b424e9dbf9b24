// Request gateway for the Videoteka backend API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	"golang.org/x/oauth2"
)

const (
	// localBaseURL is the fixed development address used when no backend
	// origin is configured.
	localBaseURL = "http://localhost:8000"

	// apiPrefix is the versioned path every endpoint lives under.
	apiPrefix = "/api/v1"

	genericFailure = "request failed"
)

// TokenProvider supplies the stored bearer token. A nil token means the
// request goes out anonymous.
type TokenProvider interface {
	AccessToken() *oauth2.Token
}

// RequestError describes a non-success backend response with the message
// extracted from its body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client is the request gateway wrapping every network call to the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
}

// NewClient creates a gateway for the given backend origin. An empty baseURL
// targets the local development server; a nil client uses
// [http.DefaultClient]. tokens may be nil for a permanently anonymous client.
func NewClient(baseURL string, client *http.Client, tokens TokenProvider) *Client {
	if baseURL == "" {
		baseURL = localBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
		tokens:     tokens,
	}
}

// Request performs a call against the versioned API and returns the parsed
// JSON body. An empty body parses to an empty object; a non-JSON body is
// wrapped as {"detail": <raw text>}. Non-2xx statuses return a
// [*RequestError] carrying the body's detail or message field.
//
// headers override the defaults set by the gateway.
func (c *Client) Request(ctx context.Context, method, path string, body any, headers map[string]string) (any, error) {
	_, parsed, err := c.roundTrip(ctx, method, path, body, headers)
	return parsed, err
}

// Do performs a call and decodes a successful JSON response into result.
// A nil result discards the body; an empty body leaves result untouched.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	raw, _, err := c.roundTrip(ctx, method, path, body, nil)
	return c.decode(raw, result, err)
}

// Health checks the backend's liveness endpoint, which lives outside the
// versioned prefix.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	raw, _, err := c.roundTripURL(ctx, http.MethodGet, c.baseURL+"/health", nil, nil)

	var status map[string]any
	if err := c.decode(raw, &status, err); err != nil {
		return nil, err
	}
	return status, nil
}

func (c *Client) decode(raw []byte, result any, err error) error {
	if err != nil {
		return err
	}

	if result == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, headers map[string]string) ([]byte, any, error) {
	return c.roundTripURL(ctx, method, c.baseURL+apiPrefix+path, body, headers)
}

func (c *Client) roundTripURL(ctx context.Context, method, fullURL string, body any, headers map[string]string) ([]byte, any, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())
	if c.tokens != nil {
		if tok := c.tokens.AccessToken(); tok != nil && tok.AccessToken != "" {
			tok.SetAuthHeader(req)
		}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	parsed := parseBody(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &RequestError{Status: resp.StatusCode, Message: errorMessage(parsed)}
	}

	return raw, parsed, nil
}

// parseBody reads the body as text first, then parses it as JSON.
func parseBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{}
	}

	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return map[string]any{"detail": string(raw)}
	}
	return parsed
}

// errorMessage extracts a human-readable message from a parsed error body,
// preferring detail over message; non-string fields are stringified.
func errorMessage(parsed any) string {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return genericFailure
	}

	for _, key := range []string{"detail", "message"} {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}

	return genericFailure
}
