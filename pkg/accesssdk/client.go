package accesssdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the public endpoints of the access service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with a 10s request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Session calls authenticated endpoints with a fixed bearer token. Token
// refresh belongs to whoever issued the token.
type Session struct {
	client *Client
	token  string
}

// WithToken returns a Session bound to accessToken.
func (c *Client) WithToken(accessToken string) *Session {
	return &Session{client: c, token: accessToken}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do sends a JSON request. in may be nil; out may be nil for responses
// without a body of interest.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any, expected int) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, out, expected)
}

func decodeJSON(resp *http.Response, target any, expected int) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expected {
		return parseErrorResponse(resp, bodyBytes)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (s *Session) do(ctx context.Context, method, path string, in, out any, expected int) error {
	return s.client.do(ctx, method, path, s.token, in, out, expected)
}

// ValidateInvitation checks a token without accepting it. Terminal
// invitations come back as an *APIError with status 410 and the status as
// Code.
func (c *Client) ValidateInvitation(ctx context.Context, token string) (*InvitationSummary, error) {
	var resp ValidateInvitationResponse
	err := c.do(ctx, http.MethodPost, "/v1/invitations/validate", "",
		ValidateInvitationRequest{InvitationToken: token}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Invitation, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
