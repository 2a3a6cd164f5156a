package entity

import "errors"

// Domain errors for analytics lookups
var (
	// Validation errors
	ErrEmptyUsername  = errors.New("username is required")
	ErrInvalidPayload = errors.New("payload is not valid JSON")

	// Webhook errors
	ErrWebhookNotConfigured = errors.New("analysis webhook URL is not configured")
	ErrWebhookTimeout       = errors.New("request timed out after 10 minutes, the analysis took too long to complete")
	ErrWebhookUnreachable   = errors.New("could not reach the analysis workflow")
	ErrWebhookStatus        = errors.New("analysis workflow returned an error")
	ErrWebhookInvalidBody   = errors.New("analysis workflow returned a non-JSON body")
)
