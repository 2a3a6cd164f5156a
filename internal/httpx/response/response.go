package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every analytics response
type Envelope struct {
	Success   bool   `json:"success"`
	Username  string `json:"username"`
	RequestID string `json:"request_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// OK sends a 200 OK response with JSON body
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Success sends a 200 OK envelope
func Success(w http.ResponseWriter, env Envelope) {
	env.Success = true
	env.Error = ""
	OK(w, env)
}

// Fail sends a failed envelope with the given status code
func Fail(w http.ResponseWriter, code int, env Envelope) {
	env.Success = false
	env.Data = nil
	JSON(w, code, env)
}

// Error sends a failed envelope carrying only a message
func Error(w http.ResponseWriter, code int, message string) {
	Fail(w, code, Envelope{Error: message})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// InternalError sends a 500 Internal Server Error
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
