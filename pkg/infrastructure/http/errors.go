// Package httputil provides HTTP error and JSON response helpers.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// MaxErrorMessageSize is the maximum size of an error message returned to clients
const MaxErrorMessageSize = 500

// HTTPError is an error carrying the status code it should be reported with
type HTTPError struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	Err        error  `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Status, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s (status %d)", e.Status, e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// truncate truncates a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// NewError builds an HTTPError with a formatted message
func NewError(status int, format string, args ...any) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		Status:     http.StatusText(status),
		Message:    truncate(fmt.Sprintf(format, args...), MaxErrorMessageSize),
	}
}

// Wrap attaches a status to err, keeping it for errors.Is/As
func Wrap(status int, err error) *HTTPError {
	e := NewError(status, "%s", err.Error())
	e.Err = err
	return e
}

// StatusOf returns the status an error should be reported with; plain errors are 500s
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}

// WriteJSON writes v as a JSON response
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a JSON error body. Internal errors are not echoed to clients.
func WriteError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = NewError(http.StatusInternalServerError, "")
	}
	_ = WriteJSON(w, httpErr.StatusCode, httpErr)
}
