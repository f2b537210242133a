// internal/common/userapi/client.go
// Package userapi wraps the account service REST API. Workers use it to
// resolve borrower sessions and to drive the admin tooling.
package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"heloc-workers/internal/models"
)

// Client talks to the account service. The token store is injected so
// session state never lives in package-level globals.
type Client struct {
	baseURL    string
	tokens     TokenStore
	httpClient *http.Client
}

// AuthResponse is returned by the sign-in and sign-up endpoints.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// APIError carries the human-readable message extracted from an error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("user api: %s (status %d)", e.Message, e.StatusCode)
}

func NewClient(baseURL string, tokens TokenStore, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SignIn authenticates and stores the returned bearer token, replacing any
// previous one.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp AuthResponse
	if err := c.request(ctx, http.MethodPost, "/api/v1/auth/sign_in", body, &resp); err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(ctx, resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignUp registers a new account and stores the returned bearer token.
func (c *Client) SignUp(ctx context.Context, email, password, passwordConfirmation string) (*AuthResponse, error) {
	body := map[string]string{
		"email":                 email,
		"password":              password,
		"password_confirmation": passwordConfirmation,
	}

	var resp AuthResponse
	if err := c.request(ctx, http.MethodPost, "/api/v1/auth/sign_up", body, &resp); err != nil {
		return nil, err
	}
	if err := c.tokens.SetToken(ctx, resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCurrentUser resolves the stored token to a user. With no stored token
// it returns nil without a network call. Any failure, network or HTTP,
// clears the token and returns nil rather than an error: an unresolvable
// session means logged out.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.request(ctx, http.MethodGet, "/api/v1/auth/me", nil, &resp); err != nil {
		if clearErr := c.tokens.ClearToken(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	return resp.User, nil
}

// GetUsers lists all accounts. Admin only on the server side.
func (c *Client) GetUsers(ctx context.Context) ([]models.User, error) {
	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := c.request(ctx, http.MethodGet, "/api/v1/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetUser fetches a single account by id.
func (c *Client) GetUser(ctx context.Context, id int) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	path := fmt.Sprintf("/api/v1/users/%d", id)
	if err := c.request(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// AdminDashboard is returned by the admin dashboard endpoint.
type AdminDashboard struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
}

func (c *Client) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	var resp AdminDashboard
	if err := c.request(ctx, http.MethodGet, "/api/v1/admin/dashboard", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// request performs one JSON round trip. The bearer token, when stored, is
// attached to every request regardless of endpoint.
func (c *Client) request(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(data),
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// extractErrorMessage pulls a display message out of an error body, checking
// "error", then "message", then a joined "errors" array.
func extractErrorMessage(body []byte) string {
	var parsed struct {
		Error   string   `json:"error"`
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Error != "":
			return parsed.Error
		case parsed.Message != "":
			return parsed.Message
		case len(parsed.Errors) > 0:
			return strings.Join(parsed.Errors, ", ")
		}
	}
	return "Request failed"
}
