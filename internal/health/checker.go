// Package health diagnoses the dependencies the client needs to take
// attendance: session storage, the backend API and the signed-in
// session. Checks run in parallel, each under its own deadline.
//
//	m := health.NewManager()
//	m.AddChecker(health.NewStorageChecker(st))
//	m.AddChecker(health.NewBackendChecker(apiURL, nil))
//	report := m.Report(ctx)
package health

import (
	"context"
	"time"
)

// Checker verifies one dependency.
type Checker interface {
	// Name is a short lowercase identifier such as "storage".
	Name() string
	// Check must honor the context deadline.
	Check(ctx context.Context) *Result
}

// Status is the outcome of a check.
type Status string

const (
	// StatusHealthy means the dependency works.
	StatusHealthy Status = "healthy"
	// StatusDegraded means commands still run but some will fail, for
	// example when nobody is signed in.
	StatusDegraded Status = "degraded"
	// StatusUnhealthy means the dependency is unusable.
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) String() string {
	return string(s)
}

// Result is the outcome of one check.
type Result struct {
	Status  Status         `json:"status" yaml:"status"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	Latency time.Duration  `json:"latency" yaml:"latency"`
}

// NewResult creates a result with empty details.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]any),
	}
}

// WithDetail adds a detail and returns r for chaining.
func (r *Result) WithDetail(key string, value any) *Result {
	r.Details[key] = value
	return r
}

// WithLatency sets the latency and returns r for chaining.
func (r *Result) WithLatency(latency time.Duration) *Result {
	r.Latency = latency
	return r
}

func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
