// Package httpx provides JSON request and response utilities.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Reason is the structured detail payload emitted for classified errors.
type Reason struct {
	Reason string `json:"reason"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// NoContent sends a bare status code with an empty body.
func NoContent(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
