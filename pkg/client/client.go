// Package client is a Go client for the clinic API. It keeps the access
// token in memory, lets the cookie jar carry the refresh cookie, and
// publishes auth state changes to a session.Store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/clinichq/clinic-backend/pkg/session"
)

var ErrUnauthorized = errors.New("unauthorized")

type Client struct {
	baseURL     string
	httpClient  *http.Client
	sessions    *session.Store
	accessToken string
}

type userPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type authPayload struct {
	AccessToken string      `json:"access_token"`
	User        userPayload `json:"user"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func New(baseURL string, sessions *session.Store) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Jar: jar},
		sessions:   sessions,
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}

	c.accessToken = resp.AccessToken
	c.sessions.Set(toSessionUser(resp.User))
	return nil
}

func (c *Client) Signup(ctx context.Context, email, password, fullName string) error {
	body := map[string]string{"email": email, "password": password, "full_name": fullName}

	var resp authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return err
	}

	c.accessToken = resp.AccessToken
	c.sessions.Set(toSessionUser(resp.User))
	return nil
}

// Refresh exchanges the refresh cookie for a new access token. The jar
// sends the cookie; no password is needed.
func (c *Client) Refresh(ctx context.Context) error {
	var resp authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, &resp); err != nil {
		return err
	}

	c.accessToken = resp.AccessToken
	c.sessions.Set(toSessionUser(resp.User))
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)

	// Local state is dropped even when the server call fails.
	c.accessToken = ""
	c.sessions.Clear()
	return err
}

func (c *Client) Me(ctx context.Context) (*session.User, error) {
	var resp userPayload
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return toSessionUser(resp), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var ep errorPayload
		if err := json.NewDecoder(resp.Body).Decode(&ep); err == nil && ep.Message != "" {
			return fmt.Errorf("request failed (%d): %s", resp.StatusCode, ep.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func toSessionUser(u userPayload) *session.User {
	return &session.User{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
