// Package respond writes the JSON envelopes used by the API.
//
// Every user-visible failure is {"success":false,"message":...}; storage
// errors are logged by the caller and never serialized into a response.
package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the minimal success/failure payload.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail writes a failure envelope with the given status.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// Unauthorized writes the standard 401 envelope for owner-only endpoints.
func Unauthorized(w http.ResponseWriter) {
	Fail(w, http.StatusUnauthorized, "sign in required")
}

// NotFound writes the standard 404 envelope for missing actors.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// StorageFailure writes an opaque 500 envelope. The underlying error stays
// in the server log.
func StorageFailure(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, "something went wrong")
}
