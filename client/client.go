// Package client is a Go SDK for the case files HTTP API.
package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	baseURL string
	http    *resty.Client

	mu    sync.RWMutex
	token string
}

// New constructs a Client for baseURL. Additional options can be provided via
// functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
	}
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Token returns the bearer token of the current session, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

// request starts an authenticated request bound to ctx.
func (c *Client) request(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if tok := c.Token(); tok != "" {
		r.SetAuthToken(tok)
	}
	return r
}

// do runs fn and converts transport and HTTP failures into SDK errors.
func do(op string, resp *resty.Response, err error, ok ...int) error {
	if err != nil {
		requestsTotal.WithLabelValues(op, "transport_error").Inc()
		return err
	}
	for _, code := range ok {
		if resp.StatusCode() == code {
			requestsTotal.WithLabelValues(op, "ok").Inc()
			return nil
		}
	}
	requestsTotal.WithLabelValues(op, "http_error").Inc()
	return newAPIError(resp)
}

// Health reports whether the service says it is healthy.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var out struct {
		Status string `json:"status"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/api/health")
	if err := do("health", resp, err, http.StatusOK); err != nil {
		return false, err
	}
	return out.Status == "healthy", nil
}
