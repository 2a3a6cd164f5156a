package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, Envelope{Username: "a", RequestID: "req-1", Source: "webhook", Data: map[string]int{"n": 1}, Error: "stale"})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	want := map[string]any{
		"success":    true,
		"username":   "a",
		"request_id": "req-1",
		"source":     "webhook",
		"data":       map[string]any{"n": float64(1)},
	}
	if diff := cmp.Diff(want, decodeBody(t, rec)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()

	Fail(rec, http.StatusGatewayTimeout, Envelope{Success: true, Username: "a", RequestID: "req-1", Data: "dropped", Error: "timed out"})

	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
	want := map[string]any{
		"success":    false,
		"username":   "a",
		"request_id": "req-1",
		"error":      "timed out",
	}
	if diff := cmp.Diff(want, decodeBody(t, rec)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()

	BadRequest(rec, "username is required")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	want := map[string]any{"success": false, "username": "", "error": "username is required"}
	if diff := cmp.Diff(want, decodeBody(t, rec)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}
