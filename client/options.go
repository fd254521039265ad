package client

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds each HTTP request issued by the SDK. The value must
// be greater than zero. Prefer per-call context deadlines where possible.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithToken resumes an existing session.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.setToken(token)
		return nil
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		timeout := c.http.GetClient().Timeout
		c.http = resty.NewWithClient(hc).
			SetBaseURL(c.baseURL).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json")
		if hc.Timeout == 0 {
			c.http.SetTimeout(timeout)
		}
		return nil
	}
}

// WithDebugLogging logs every request and response at debug level. Bearer
// tokens are not logged.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			log.Debug().Str("method", r.Method).Str("url", r.URL).Msg("HTTP request")
			return nil
		})
		c.http.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
			log.Debug().
				Str("method", r.Request.Method).
				Str("url", r.Request.URL).
				Int("status_code", r.StatusCode()).
				Dur("duration", r.Time()).
				Msg("HTTP response")
			return nil
		})
		return nil
	}
}

// debugLoggingRequested reports whether CASEFILES_DEBUG=true.
func debugLoggingRequested() bool {
	return os.Getenv("CASEFILES_DEBUG") == "true"
}
