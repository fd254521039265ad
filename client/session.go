package client

import (
	"context"
	"net/http"
)

// Login opens a session; subsequent calls carry its token.
func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/session")
	if err := do("login", resp, err, http.StatusCreated); err != nil {
		return User{}, err
	}
	c.setToken(out.Token)
	return out.User, nil
}

// CurrentUser returns the identity behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	resp, err := c.request(ctx).SetResult(&out).Get("/api/session")
	if err := do("current_user", resp, err, http.StatusOK); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// Logout ends the session and forgets the token.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.request(ctx).Delete("/api/session")
	if err := do("logout", resp, err, http.StatusNoContent); err != nil {
		return err
	}
	c.setToken("")
	return nil
}
