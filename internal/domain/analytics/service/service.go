package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/normalizer"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/httpx/upstream/n8n"
)

// Webhook defines the interface for the scraping workflow
// Interface is defined by consumer (service), not provider (upstream client)
type Webhook interface {
	Configured() bool
	Lookup(ctx context.Context, in n8n.LookupInput) (any, error)
}

// Service fetches raw workflow output and normalizes it
type Service struct {
	webhook    Webhook
	normalizer *normalizer.Normalizer
	now        func() time.Time
}

// New creates a new analytics service
func New(webhook Webhook, norm *normalizer.Normalizer) *Service {
	return &Service{
		webhook:    webhook,
		normalizer: norm,
		now:        time.Now,
	}
}

// FetchInput represents input for fetching analytics
type FetchInput struct {
	Username  string
	RequestID string
}

// Fetch runs the workflow for a username and returns the normalized result
func (s *Service) Fetch(ctx context.Context, in FetchInput) (*entity.AnalyticsResult, error) {
	if in.Username == "" {
		return nil, entity.ErrEmptyUsername
	}
	if !s.webhook.Configured() {
		return nil, entity.ErrWebhookNotConfigured
	}

	raw, err := s.webhook.Lookup(ctx, n8n.LookupInput{
		Username:  in.Username,
		RequestID: in.RequestID,
		Timestamp: s.now(),
	})
	if err != nil {
		return nil, mapWebhookError(err)
	}

	result := s.normalizer.Transform(in.Username, raw)
	return &result, nil
}

// Normalize maps an already fetched payload without calling the workflow
func (s *Service) Normalize(username string, data []byte) (*entity.AnalyticsResult, error) {
	result, err := s.normalizer.TransformJSON(username, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidPayload, err)
	}
	return &result, nil
}

func mapWebhookError(err error) error {
	var statusErr *n8n.StatusError

	switch {
	case errors.Is(err, n8n.ErrTimeout):
		return fmt.Errorf("%w: %v", entity.ErrWebhookTimeout, err)
	case errors.Is(err, n8n.ErrUnreachable):
		return fmt.Errorf("%w: %v", entity.ErrWebhookUnreachable, err)
	case errors.Is(err, n8n.ErrInvalidBody):
		return fmt.Errorf("%w: %v", entity.ErrWebhookInvalidBody, err)
	case errors.Is(err, n8n.ErrNoURL):
		return entity.ErrWebhookNotConfigured
	case errors.As(err, &statusErr):
		return fmt.Errorf("%w: %w", entity.ErrWebhookStatus, statusErr)
	default:
		return fmt.Errorf("fetching analytics: %w", err)
	}
}
