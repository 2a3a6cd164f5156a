package policy

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/fixture"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/service"
)

// Source tells the caller where a result came from
type Source string

const (
	SourceWebhook Source = "webhook"
	SourceFixture Source = "fixture"
	SourcePayload Source = "payload"
)

// Analytics defines the interface for fetching and normalizing results
type Analytics interface {
	Fetch(ctx context.Context, in service.FetchInput) (*entity.AnalyticsResult, error)
	Normalize(username string, data []byte) (*entity.AnalyticsResult, error)
}

// Policy orchestrates analytics lookups
type Policy struct {
	svc             Analytics
	demoUsernames   map[string]struct{}
	fallbackOnError bool
	newRequestID    func() string
	logger          *slog.Logger
}

// Option configures a Policy
type Option func(*Policy)

// WithDemoUsernames sets the usernames answered from the fixture without calling the workflow
func WithDemoUsernames(names ...string) Option {
	return func(p *Policy) {
		p.demoUsernames = make(map[string]struct{}, len(names))
		for _, name := range names {
			name = strings.ToLower(strings.TrimSpace(name))
			if name != "" {
				p.demoUsernames[name] = struct{}{}
			}
		}
	}
}

// WithFallbackOnError serves the fixture when the workflow fails for any reason but a timeout or cancellation
func WithFallbackOnError(enabled bool) Option {
	return func(p *Policy) {
		p.fallbackOnError = enabled
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Policy) {
		p.logger = logger
	}
}

// New creates a new analytics policy
func New(svc Analytics, opts ...Option) *Policy {
	p := &Policy{
		svc:          svc,
		newRequestID: newRequestID,
		logger:       slog.New(slog.DiscardHandler),
	}
	WithDemoUsernames("demo", "mock")(p)

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// LookupInput represents input for a profile lookup
type LookupInput struct {
	Username string
}

// LookupOutput represents the outcome of a lookup
type LookupOutput struct {
	Username  string
	RequestID string
	Source    Source
	Result    *entity.AnalyticsResult
}

// Lookup resolves analytics for a username
func (p *Policy) Lookup(ctx context.Context, in LookupInput) (*LookupOutput, error) {
	username := CleanUsername(in.Username)
	if username == "" {
		return nil, entity.ErrEmptyUsername
	}

	out := &LookupOutput{
		Username:  username,
		RequestID: p.newRequestID(),
	}
	logger := p.logger.With("username", username, "request_id", out.RequestID)

	if p.isDemo(username) {
		logger.Info("serving demo fixture")
		out.Source = SourceFixture
		out.Result = fixtureFor(username)
		return out, nil
	}

	result, err := p.svc.Fetch(ctx, service.FetchInput{
		Username:  username,
		RequestID: out.RequestID,
	})
	if err != nil {
		if !p.shouldFallback(err) {
			logger.Error("analytics lookup failed", "error", err)
			return nil, err
		}
		logger.Warn("analytics lookup failed, serving demo fixture", "error", err)
		out.Source = SourceFixture
		out.Result = fixtureFor(username)
		return out, nil
	}

	logger.Info("analytics lookup completed", "posts", len(result.Posts))
	out.Source = SourceWebhook
	out.Result = result
	return out, nil
}

// NormalizeInput represents input for normalizing a posted payload
type NormalizeInput struct {
	Username string
	Payload  []byte
}

// Normalize maps a raw workflow payload without calling the workflow
func (p *Policy) Normalize(ctx context.Context, in NormalizeInput) (*LookupOutput, error) {
	username := CleanUsername(in.Username)
	if username == "" {
		return nil, entity.ErrEmptyUsername
	}

	result, err := p.svc.Normalize(username, in.Payload)
	if err != nil {
		return nil, err
	}

	return &LookupOutput{
		Username:  username,
		RequestID: p.newRequestID(),
		Source:    SourcePayload,
		Result:    result,
	}, nil
}

// CleanUsername trims whitespace and one leading @
func CleanUsername(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	return strings.TrimSpace(s)
}

func (p *Policy) isDemo(username string) bool {
	_, ok := p.demoUsernames[strings.ToLower(username)]
	return ok
}

// Timeouts and caller cancellations always surface, as do input errors.
// Any other webhook failure falls back, a missing webhook URL included.
func (p *Policy) shouldFallback(err error) bool {
	if !p.fallbackOnError {
		return false
	}
	switch {
	case errors.Is(err, entity.ErrWebhookTimeout),
		errors.Is(err, entity.ErrEmptyUsername),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

func fixtureFor(username string) *entity.AnalyticsResult {
	result := fixture.Load(username)
	return &result
}

// newRequestID returns "req-" followed by 9 hex characters
func newRequestID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "req-" + id[:9]
}
