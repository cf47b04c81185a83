package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/session"
	"github.com/felixgeelhaar/uniattend/internal/storage"
)

const probeKey = "health.probe"

// StorageChecker writes, reads back and removes a probe key.
type StorageChecker struct {
	store   storage.Store
	backend string
}

// NewStorageChecker checks st. backend names it in the result.
func NewStorageChecker(st storage.Store, backend string) *StorageChecker {
	return &StorageChecker{store: st, backend: backend}
}

func (c *StorageChecker) Name() string { return "storage" }

func (c *StorageChecker) Check(ctx context.Context) *Result {
	want := time.Now().UTC().Format(time.RFC3339Nano)
	if err := c.store.SetMany(ctx, map[string]string{probeKey: want}); err != nil {
		return Unhealthy("session storage is not writable").
			WithDetail("backend", c.backend).
			WithDetail("error", err.Error())
	}
	defer func() { _ = c.store.Delete(context.WithoutCancel(ctx), probeKey) }()

	got, ok, err := c.store.Get(ctx, probeKey)
	switch {
	case err != nil:
		return Unhealthy("session storage is not readable").
			WithDetail("backend", c.backend).
			WithDetail("error", err.Error())
	case !ok || got != want:
		return Unhealthy("session storage lost a write").WithDetail("backend", c.backend)
	}
	return Healthy(fmt.Sprintf("%s storage is readable and writable", c.backend)).
		WithDetail("backend", c.backend)
}

// BackendChecker requests the API base URL. Any answer below 500 means
// the backend is reachable.
type BackendChecker struct {
	url    string
	client *http.Client
}

// NewBackendChecker checks url with client, or http.DefaultClient when
// client is nil.
func NewBackendChecker(url string, client *http.Client) *BackendChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &BackendChecker{url: url, client: client}
}

func (c *BackendChecker) Name() string { return "backend" }

func (c *BackendChecker) Check(ctx context.Context) *Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Unhealthy("invalid API URL").WithDetail("url", c.url)
	}
	start := time.Now()
	resp, err := c.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return Unhealthy("backend is unreachable").
			WithDetail("url", c.url).
			WithDetail("error", err.Error()).
			WithLatency(latency)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Degraded(fmt.Sprintf("backend answered %d", resp.StatusCode)).
			WithDetail("url", c.url).
			WithDetail("status", resp.StatusCode).
			WithLatency(latency)
	}
	return Healthy("backend is reachable").
		WithDetail("url", c.url).
		WithDetail("status", resp.StatusCode).
		WithLatency(latency)
}

// SessionSource exposes the signed-in session.
type SessionSource interface {
	Current() *session.Session
}

// SessionChecker reports who is signed in and whether the access token
// has expired.
type SessionChecker struct {
	source SessionSource
	now    func() time.Time
}

func NewSessionChecker(source SessionSource) *SessionChecker {
	return &SessionChecker{source: source, now: time.Now}
}

func (c *SessionChecker) Name() string { return "session" }

func (c *SessionChecker) Check(_ context.Context) *Result {
	s := c.source.Current()
	if s == nil {
		return Degraded("nobody is signed in")
	}
	r := Healthy(fmt.Sprintf("signed in as %s", s.DisplayName)).
		WithDetail("email", s.Email).
		WithDetail("roles", s.Roles.Names())

	exp, ok := session.TokenExpiry(s.AccessToken)
	if !ok {
		return r
	}
	r.WithDetail("expires", exp.UTC().Format(time.RFC3339))
	if !exp.After(c.now()) {
		r.Status = StatusDegraded
		r.Message = "access token has expired, sign in again"
	}
	return r
}
