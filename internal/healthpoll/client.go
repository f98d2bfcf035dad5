// Package healthpoll polls the API health endpoint and tracks whether the API
// is reachable, the way the web frontend's connection badge does.
package healthpoll

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/matttelliott/bookmarker-ai/internal/foundation"
	derrors "github.com/matttelliott/bookmarker-ai/internal/foundation/errors"
	"github.com/matttelliott/bookmarker-ai/internal/health"
	"github.com/matttelliott/bookmarker-ai/internal/logfields"
)

const (
	DefaultHealthPath = "/health"
	maxBodyBytes      = 64 << 10
)

// Client fetches health payloads from a bookmarker API.
type Client struct {
	baseURL    string
	healthPath string
	http       *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. The HTTP client in use is copied, so a
// shared client such as http.DefaultClient is left untouched.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithHealthPath overrides the endpoint path.
func WithHealthPath(p string) ClientOption {
	return func(c *Client) { c.healthPath = p }
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		healthPath: DefaultHealthPath,
		http:       &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the polled endpoint.
func (c *Client) URL() string {
	return c.baseURL + c.healthPath
}

// Fetch issues GET {baseURL}/health. Transport errors, non-2xx responses and
// undecodable bodies are failures.
func (c *Client) Fetch(ctx context.Context) foundation.Outcome[health.Status] {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return foundation.Err[health.Status](derrors.ConfigError("invalid health URL").
			WithCause(err).
			WithContext("url", c.URL()).
			Build())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return foundation.Err[health.Status](derrors.WrapError(err, derrors.CategoryNetwork, "health request failed").
			WithContext("url", c.URL()).
			Retryable().
			Build())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return foundation.Err[health.Status](derrors.UpstreamError("unexpected health status code").
			WithContext("url", c.URL()).
			WithContext("status", resp.StatusCode).
			Build())
	}

	var st health.Status
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&st); err != nil {
		return foundation.Err[health.Status](derrors.WrapError(err, derrors.CategoryUpstream, "invalid health payload").
			WithContext("url", c.URL()).
			Build())
	}
	return foundation.Ok(st)
}

// GetHealth is Fetch with every failure collapsed to None.
func (c *Client) GetHealth(ctx context.Context) foundation.Option[health.Status] {
	return foundation.Match(c.Fetch(ctx),
		foundation.Some[health.Status],
		func(err error) foundation.Option[health.Status] {
			slog.Debug("Health check failed", logfields.URL(c.URL()), logfields.Error(err))
			return foundation.None[health.Status]()
		})
}
