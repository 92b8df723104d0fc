package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced by the gateway and the layers above it.
var (
	// ErrRequestBlocked marks a cart call refused locally while an auth
	// flow is in progress; no network I/O happened.
	ErrRequestBlocked = errors.New("request blocked during auth flow")

	// ErrNotAuthenticated marks calls that need a token when none exists.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError carries the HTTP status and a best-effort message extracted
// from a failed backend response. The gateway never retries; callers
// decide display and retry policy.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// extractMessage pulls a human-readable message out of an error body,
// preferring the conventional JSON fields before falling back to the raw
// body text.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Title != "" {
			return payload.Title
		}
	}
	return strings.TrimSpace(string(body))
}
