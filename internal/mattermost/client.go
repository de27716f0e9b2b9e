package mattermost

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
)

const defaultTimeout = 15 * time.Second

// Token is the bearer token returned by a successful login, already
// prefixed for use in the Authorization header.
type Token string

// User is the subset of the Mattermost user record this tool needs.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Nickname  string `json:"nickname"`
}

// Client talks to the Mattermost REST API (v4).
type Client struct {
	http *resty.Client
}

// NewClient returns a Client for the given API base URL, e.g.
// https://my-mattermost-server.com/api/v4.
func NewClient(baseURL string) *Client {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout)

	return &Client{http: cli}
}

// Login authenticates with the stored credentials and returns the session
// token together with the authenticated user's details.
//
// Mattermost returns the session token in the "Token" response header;
// its absence is ErrTokenMissing. A 401 maps to ErrAuthFailed.
func (c *Client) Login(ctx context.Context, username, password string) (Token, *User, error) {
	var user User
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"login_id": username, "password": password}).
		SetResult(&user).
		Post("/users/login")
	if err != nil {
		return "", nil, fmt.Errorf("login request: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return "", nil, mcerrors.ErrAuthFailed
	}
	if resp.IsError() {
		return "", nil, fmt.Errorf("login failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	token := resp.Header().Get("Token")
	if token == "" {
		return "", nil, mcerrors.ErrTokenMissing
	}

	return Token("Bearer " + token), &user, nil
}

// UserByEmail retrieves a user by their email address.
func (c *Client) UserByEmail(ctx context.Context, token Token, email string) (*User, error) {
	var user User
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", string(token)).
		SetResult(&user).
		Get("/users/email/" + url.PathEscape(email))
	if err != nil {
		return nil, fmt.Errorf("user lookup request: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", mcerrors.ErrUserNotFound, email)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("user lookup failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return &user, nil
}

// CreateDirectChannel opens (or reuses) the direct-message channel between
// the two given user ids and returns the channel id.
func (c *Client) CreateDirectChannel(ctx context.Context, token Token, fromID, toID string) (string, error) {
	var channel struct {
		ID string `json:"id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", string(token)).
		SetHeader("Content-Type", "application/json").
		SetBody([]string{fromID, toID}).
		SetResult(&channel).
		Post("/channels/direct")
	if err != nil {
		return "", fmt.Errorf("direct channel request: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("direct channel creation failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	if channel.ID == "" {
		return "", fmt.Errorf("direct channel response carried no id")
	}

	return channel.ID, nil
}

// CreatePost posts a message into the given channel.
func (c *Client) CreatePost(ctx context.Context, token Token, channelID, message string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", string(token)).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"channel_id": channelID, "message": message}).
		Post("/posts")
	if err != nil {
		return fmt.Errorf("post request: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("post failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
