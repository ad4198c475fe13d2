package jira

import (
	"fmt"
	"strings"
	"time"
)

// NotFoundError indicates the requested resource does not exist (HTTP 404).
type NotFoundError struct {
	Resource string // e.g. "issue PROJ-123"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// AuthError indicates the request was rejected for authentication or
// permission reasons (HTTP 401/403).
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed (%d)", e.StatusCode)
}

// ValidationError indicates Jira rejected the request payload (HTTP 400/422).
// Messages collects Jira's errorMessages array; Fields collects the
// per-field errors object.
type ValidationError struct {
	Messages []string
	Fields   map[string]string
}

func (e *ValidationError) Error() string {
	var parts []string
	parts = append(parts, e.Messages...)
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RateLimitError indicates Jira throttled the request (HTTP 429).
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// APIError is the catch-all for non-2xx responses that don't map to a more
// specific error type.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("jira API returned %d: %s", e.StatusCode, body)
}
