// Package apiclient is the typed HTTP client for the GroChain REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/config"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/models"
	"grochain-dashboard/internal/observability"
)

const maxResponseBytes = 10 << 20

// TokenSource supplies the bearer token for calls whose context carries
// none. The CLI's file-backed *auth.Session satisfies it; the web server
// passes nil and relies on auth.WithToken.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

func New(cfg config.APIConfig, tokens TokenSource, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse API base URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}, nil
}

// call performs one request and unwraps the response envelope into T.
func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var zero T

	ctx, span := observability.StartSpan(ctx, "api "+method+" "+path)
	span.SetTag("http.method", method)
	span.SetTag("http.path", path)
	defer func() {
		span.Finish()
		span.Log(ctx, observability.LoggerFrom(ctx, c.logger))
	}()

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		span.SetError(err)
		return zero, apperrors.InternalWrap(err, "Failed to build API request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetError(err)
		return zero, apperrors.Upstream(err, "GroChain API is unreachable")
	}
	defer resp.Body.Close()
	span.SetTag("http.status_code", strconv.Itoa(resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.SetError(err)
		return zero, apperrors.Upstream(err, "Failed to read API response")
	}

	var env models.Envelope[T]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := statusError(resp.StatusCode, env, decodeErr)
		span.SetError(appErr)
		return zero, appErr
	}
	if decodeErr != nil {
		span.SetError(decodeErr)
		return zero, apperrors.Upstream(decodeErr, "GroChain API returned a malformed response")
	}
	if !env.Success {
		appErr := apperrors.UpstreamRejected(env.Reason())
		span.SetError(appErr)
		return zero, appErr
	}

	return env.Data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := auth.TokenFrom(ctx)
	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := observability.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	return req, nil
}

// statusError maps a non-2xx answer onto an AppError, keeping the backend's
// own message when the body was a readable envelope.
func statusError[T any](status int, env models.Envelope[T], decodeErr error) *apperrors.AppError {
	reason := fmt.Sprintf("GroChain API responded with status %d", status)
	if decodeErr == nil && (env.Error != "" || env.Message != "") {
		reason = env.Reason()
	}

	switch {
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(reason)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(reason)
	case status == http.StatusNotFound:
		return apperrors.NotFound(reason)
	case status == http.StatusConflict:
		return apperrors.Conflict(reason)
	case status >= 400 && status < 500:
		return apperrors.UpstreamRejected(reason)
	default:
		return apperrors.Upstream(fmt.Errorf("status %d", status), reason)
	}
}
