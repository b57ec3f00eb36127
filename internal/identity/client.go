// Package identity calls the hosted authentication service that verifies
// admin credentials. Credential storage and verification live entirely on
// the remote side; this client only exchanges email/password for an
// identity and revokes sessions.
package identity

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBadCredentials is returned when the service rejects the sign-in.
var ErrBadCredentials = errors.New("invalid email or password")

// Identity is the authenticated principal.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Client calls the identity service.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Skip    bool
}

// New creates a client. With skip set, sign-in succeeds locally with a
// deterministic uid; useful for development without the hosted service.
func New(baseURL, apiKey string, skip bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Skip:    skip,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SignIn verifies email/password and returns the identity.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, ErrBadCredentials
	}
	if c.Skip {
		sum := sha1.Sum([]byte(email))
		return &Identity{UID: "dev-" + hex.EncodeToString(sum[:8]), Email: email}, nil
	}

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return nil, ErrBadCredentials
	}
	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("identity service error %s: %s", resp.Status, string(bodyBytes))
	}

	var out Identity
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.UID == "" {
		return nil, errors.New("identity service returned no uid")
	}
	return &out, nil
}

// SignOut revokes every session of an identity on the remote side. Used for
// the forced sign-out on gate denial.
func (c *Client) SignOut(ctx context.Context, uid string) error {
	if c.Skip || uid == "" {
		return nil
	}

	body, _ := json.Marshal(map[string]string{"uid": uid})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/sessions/revoke", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("identity service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("identity service error %s: %s", resp.Status, string(bodyBytes))
	}
	return nil
}

// Health checks if the identity service is reachable.
func (c *Client) Health(ctx context.Context) error {
	if c.Skip {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("identity service unavailable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("identity service unhealthy: %s", resp.Status)
	}
	return nil
}
