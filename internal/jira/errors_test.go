package jira

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found",
			err:  &NotFoundError{Resource: "issue DEMO-404"},
			want: "issue DEMO-404 not found",
		},
		{
			name: "auth with message",
			err:  &AuthError{StatusCode: 401, Message: "token expired"},
			want: "authentication failed (401): token expired",
		},
		{
			name: "auth bare",
			err:  &AuthError{StatusCode: 403},
			want: "authentication failed (403)",
		},
		{
			name: "validation empty",
			err:  &ValidationError{},
			want: "validation failed",
		},
		{
			name: "validation messages",
			err:  &ValidationError{Messages: []string{"summary is required"}},
			want: "validation failed: summary is required",
		},
		{
			name: "rate limit with retry",
			err:  &RateLimitError{RetryAfter: 30 * time.Second},
			want: "rate limited, retry after 30s",
		},
		{
			name: "rate limit bare",
			err:  &RateLimitError{},
			want: "rate limited",
		},
		{
			name: "api error",
			err:  &APIError{StatusCode: 500, Body: "boom"},
			want: "jira API returned 500: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"priority": "unknown priority"}}
	if got := err.Error(); got != "validation failed: priority: unknown priority" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAPIErrorTruncatesBody(t *testing.T) {
	err := &APIError{StatusCode: 502, Body: strings.Repeat("x", 500)}
	msg := err.Error()
	if len(msg) > 250 {
		t.Errorf("message not truncated, len = %d", len(msg))
	}
	if !strings.HasSuffix(msg, "...") {
		t.Errorf("truncated message missing ellipsis: %q", msg)
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get issue DEMO-404: %w", &NotFoundError{Resource: "issue DEMO-404"})

	var nfe *NotFoundError
	if !errors.As(wrapped, &nfe) {
		t.Fatal("errors.As failed through wrapping")
	}
	if nfe.Resource != "issue DEMO-404" {
		t.Errorf("Resource = %q", nfe.Resource)
	}
}
