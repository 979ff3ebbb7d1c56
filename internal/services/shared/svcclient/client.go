// Package svcclient is the JSON-over-HTTP client services use to call each
// other on behalf of a player.
package svcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/platform/requestctx"
)

const maxResponseBytes = 4 << 20

// TokenIssuer mints the bearer token sent for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Client calls one peer service.
type Client struct {
	service    string
	baseURL    string
	tokens     TokenIssuer
	httpClient *http.Client
	timeout    time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout caps each call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// New builds a client for the named service at baseURL.
func New(service, baseURL string, tokens TokenIssuer, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%s base url is required", service)
	}
	if tokens == nil {
		return nil, fmt.Errorf("%s token issuer is required", service)
	}
	c := &Client{
		service:    service,
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do sends one request acting as username. A non-nil body is JSON encoded and
// a non-nil out receives the decoded response. Peer error bodies are turned
// back into domain errors carrying the peer's code.
func (c *Client) Do(ctx context.Context, method, path, username string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", c.service, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.service, err)
	}
	token, err := c.tokens.Issue(username)
	if err != nil {
		return fmt.Errorf("issue %s token: %w", c.service, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(httpx.RequestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeServiceUnavailable, fmt.Sprintf("%s service unavailable", c.service), err)
	}
	defer resp.Body.Close()
	limited := io.LimitReader(resp.Body, maxResponseBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp.StatusCode, limited)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.CodeServiceUnavailable, fmt.Sprintf("decode %s response", c.service), err)
	}
	return nil
}

func (c *Client) decodeError(status int, body io.Reader) error {
	var payload httpx.ErrorBody
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Code == "" {
		return apperrors.New(apperrors.CodeServiceUnavailable, fmt.Sprintf("%s service returned status %d", c.service, status))
	}
	code := apperrors.Code(payload.Code)
	if code == apperrors.CodeUnknown {
		code = apperrors.CodeServiceUnavailable
	}
	return apperrors.WithMetadata(code, payload.Error, payload.Metadata)
}
