// Package render writes JSON responses for the REST handlers and middlewares.
package render

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// Error writes an error body with the given status code.
func Error(w http.ResponseWriter, status int, code, message string) error {
	return JSON(w, status, ErrorResponse{Error: code, Message: message})
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}
