package platform

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/log"
)

// AuthHeader carries the access token on authenticated calls.
const AuthHeader = "Auth-token"

// RequestValidator checks an outgoing request before it is sent.
type RequestValidator interface {
	ValidateRequest(ctx context.Context, req *http.Request, body []byte) error
}

// Client is the UniAttend backend API client
type Client struct {
	baseURL        string
	httpClient     *http.Client
	token          func() string
	onUnauthorized func(context.Context)
	userAgent      string
	logger         *log.Logger
	validator      RequestValidator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTokenSource sets where the access token is read from. It is called
// for every authenticated request so a logout takes effect immediately.
func WithTokenSource(token func() string) Option {
	return func(c *Client) { c.token = token }
}

// WithUnauthorizedHandler is invoked when an authenticated call gets 401.
func WithUnauthorizedHandler(fn func(context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRequestValidator validates every request before it is sent.
func WithRequestValidator(v RequestValidator) Option {
	return func(c *Client) { c.validator = v }
}

// NewClient creates a new backend API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token:  func() string { return "" },
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do performs req and decodes a 2xx body into target.
func (c *Client) do(ctx context.Context, req request, target any) error {
	var payload []byte
	if req.body != nil {
		var err error
		payload, err = json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	ctx = log.ContextWithRequestID(ctx, requestID)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if req.auth {
		token := c.token()
		if token == "" {
			return errors.NewNotLoggedInError()
		}
		httpReq.Header.Set(AuthHeader, token)
	}

	if c.validator != nil {
		if err := c.validator.ValidateRequest(ctx, httpReq, payload); err != nil {
			return errors.Wrap(errors.ErrCodeAPIContract, fmt.Sprintf("%s %s violates the API contract", req.method, req.path), err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Wrap(errors.ErrCodeNetwork, "failed to reach the backend", err).
			WithSuggestion("Check api_url with 'uniattend config get api_url'")
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "backend call",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.failure(ctx, req, resp, requestID)
	}

	if target == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, "failed to read response", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.Wrap(errors.ErrCodeAPIDecode, "failed to decode response", err)
	}
	return nil
}

// failure turns a non-2xx response into an error, logging the session
// out when an authenticated call was rejected with 401.
func (c *Client) failure(ctx context.Context, req request, resp *http.Response, requestID string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(body),
		RequestID:  requestID,
	}

	c.logger.WarnContext(ctx, "backend rejected request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
	)

	if stderrors.Is(apiErr, ErrUnauthorized) {
		if req.auth {
			if c.onUnauthorized != nil {
				c.onUnauthorized(ctx)
			}
			return errors.NewSessionExpiredError(apiErr)
		}
		return errors.Wrap(errors.ErrCodeInvalidCredentials, "sign-in rejected", apiErr)
	}
	return errors.Wrap(errors.ErrCodeAPIRequest, fmt.Sprintf("%s %s failed", req.method, req.path), apiErr)
}

// errorMessage extracts {message} or {error} from a JSON error body.
func errorMessage(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}

// envelope is the {body, message} wrapper some endpoints use.
type envelope[T any] struct {
	Body    T      `json:"body"`
	Message string `json:"message,omitempty"`
}

func pathID(id fmt.Stringer) string {
	return url.PathEscape(id.String())
}
