package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/entity"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/policy"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/httpx/response"
)

// Upper bound for a posted raw payload
const maxPayloadBytes = 16 << 20

// AnalyticsPolicy defines the interface for analytics operations
// Interface is defined by consumer (handler), not provider (policy)
type AnalyticsPolicy interface {
	Lookup(ctx context.Context, in policy.LookupInput) (*policy.LookupOutput, error)
	Normalize(ctx context.Context, in policy.NormalizeInput) (*policy.LookupOutput, error)
}

// AnalyticsHandler handles HTTP requests for profile analytics
type AnalyticsHandler struct {
	policy AnalyticsPolicy
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(p AnalyticsPolicy) *AnalyticsHandler {
	return &AnalyticsHandler{policy: p}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Post("/", h.Lookup())
		r.Post("/normalize", h.Normalize())
		r.Get("/{username}", h.Get())
	})
}

// LookupRequest represents the request body for a lookup
type LookupRequest struct {
	Username string `json:"username"`
}

// Lookup handles POST /analytics
func (h *AnalyticsHandler) Lookup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LookupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON")
			return
		}

		h.lookup(w, r, req.Username)
	}
}

// Get handles GET /analytics/{username}
func (h *AnalyticsHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.lookup(w, r, chi.URLParam(r, "username"))
	}
}

func (h *AnalyticsHandler) lookup(w http.ResponseWriter, r *http.Request, username string) {
	out, err := h.policy.Lookup(r.Context(), policy.LookupInput{Username: username})
	if err != nil {
		handleDomainError(w, policy.CleanUsername(username), err)
		return
	}

	writeOutput(w, out)
}

// Normalize handles POST /analytics/normalize?username=
func (h *AnalyticsHandler) Normalize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.URL.Query().Get("username")

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Fail(w, http.StatusRequestEntityTooLarge, response.Envelope{Username: username, Error: "payload too large"})
				return
			}
			response.Fail(w, http.StatusBadRequest, response.Envelope{Username: username, Error: "reading payload failed"})
			return
		}

		out, err := h.policy.Normalize(r.Context(), policy.NormalizeInput{Username: username, Payload: payload})
		if err != nil {
			handleDomainError(w, policy.CleanUsername(username), err)
			return
		}

		writeOutput(w, out)
	}
}

func writeOutput(w http.ResponseWriter, out *policy.LookupOutput) {
	response.Success(w, response.Envelope{
		Username:  out.Username,
		RequestID: out.RequestID,
		Source:    string(out.Source),
		Data:      out.Result,
	})
}

func handleDomainError(w http.ResponseWriter, username string, err error) {
	env := response.Envelope{Username: username, Error: err.Error()}

	switch {
	case errors.Is(err, entity.ErrEmptyUsername), errors.Is(err, entity.ErrInvalidPayload):
		response.Fail(w, http.StatusBadRequest, env)
	case errors.Is(err, entity.ErrWebhookTimeout):
		env.Error = entity.ErrWebhookTimeout.Error()
		response.Fail(w, http.StatusGatewayTimeout, env)
	case errors.Is(err, entity.ErrWebhookUnreachable):
		env.Error = entity.ErrWebhookUnreachable.Error()
		response.Fail(w, http.StatusBadGateway, env)
	case errors.Is(err, entity.ErrWebhookStatus), errors.Is(err, entity.ErrWebhookInvalidBody):
		response.Fail(w, http.StatusBadGateway, env)
	case errors.Is(err, entity.ErrWebhookNotConfigured):
		response.Fail(w, http.StatusServiceUnavailable, env)
	default:
		env.Error = "internal server error"
		response.Fail(w, http.StatusInternalServerError, env)
	}
}
