// Package health reports the liveness of the bookmarker API.
package health

import (
	"context"
	"time"
)

// DefaultServiceName is the service identifier reported by the health endpoint.
const DefaultServiceName = "bookmarker-api"

// StatusOK is the only status the API reports about itself.
const StatusOK = "ok"

// TimestampLayout matches JavaScript's Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Status is the health endpoint payload.
type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// OK reports whether the payload describes a healthy service.
func (s Status) OK() bool {
	return s.Status == StatusOK
}

// Service builds health payloads.
type Service struct {
	name string
	now  func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service reporting name, or DefaultServiceName when empty.
func NewService(name string, opts ...Option) *Service {
	if name == "" {
		name = DefaultServiceName
	}
	s := &Service{name: name, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the reported service name.
func (s *Service) Name() string { return s.name }

// Check returns the current health payload. It never fails.
func (s *Service) Check(_ context.Context) Status {
	return Status{
		Status:    StatusOK,
		Timestamp: s.now().UTC().Format(TimestampLayout),
		Service:   s.name,
	}
}
