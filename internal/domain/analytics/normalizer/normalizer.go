// Package normalizer maps arbitrarily shaped webhook payloads onto canonical analytics records.
//
// The pipeline is DetectShape -> MapPosts -> ResolveProfile -> Aggregate. No stage returns an
// error: absent or mistyped fields fall back to defaults.
package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
)

// Normalizer turns raw payloads into AnalyticsResult records.
// It holds no per-request state and is safe for concurrent use.
type Normalizer struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithClock sets the time source used for default timestamps and synthesized ids
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// WithLogger sets the logger. Only shapes and counts are logged, never payload contents.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// New creates a new Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Transform normalizes an already-decoded JSON value. username is the name the caller
// searched for; it backs the profile when the payload omits one.
func (n *Normalizer) Transform(username string, raw any) entity.AnalyticsResult {
	shape := DetectShape(raw)
	now := n.now()

	posts := MapPosts(shape.Posts, now)
	profile := ResolveProfile(shape.Root, shape.FirstPostOwner(), username, len(posts))
	posts, summary := Aggregate(posts, profile.FollowersCount)

	n.logger.Debug("normalized payload",
		"shape", string(shape.Kind),
		"posts", len(posts),
		"username", profile.Username,
		"has_root_profile", shape.Root != nil,
	)

	return entity.AnalyticsResult{
		Profile:   profile,
		Posts:     posts,
		Analytics: summary,
	}
}

// TransformJSON decodes data and normalizes it. It fails only when data is not JSON.
func (n *Normalizer) TransformJSON(username string, data []byte) (entity.AnalyticsResult, error) {
	raw, err := Decode(data)
	if err != nil {
		return entity.AnalyticsResult{}, err
	}
	return n.Transform(username, raw), nil
}

// Decode parses JSON into the generic tree the normalizer works on.
// Numbers are kept as json.Number so large ids survive intact. Blank input decodes to nil.
func Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return raw, nil
}
