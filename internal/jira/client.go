// Package jira is an SDK for the Atlassian Jira Cloud REST, Agile, and
// Service Management APIs. All methods take a context and return typed
// errors (NotFoundError, AuthError, ValidationError, RateLimitError,
// APIError) that callers can match with errors.As.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jira-assistant/jira-as/internal/telemetry"
)

const (
	apiPrefix   = "/rest/api/3"
	agilePrefix = "/rest/agile/1.0"
	jsmPrefix   = "/rest/servicedeskapi"

	defaultTimeout    = 30 * time.Second
	defaultMaxElapsed = 60 * time.Second
)

// Client provides HTTP access to a Jira Cloud instance.
type Client struct {
	BaseURL    string
	Email      string
	APIToken   string
	HTTPClient *http.Client

	// MaxElapsed bounds the total time spent retrying a single request.
	MaxElapsed time.Duration
}

// NewClient creates a Jira client for the given site.
func NewClient(baseURL, email, apiToken string) *Client {
	return &Client{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Email:    email,
		APIToken: apiToken,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		MaxElapsed: defaultMaxElapsed,
	}
}

// Close releases client resources. It exists so that *Client and the mock
// client share a method surface; the underlying http.Client needs no
// explicit teardown.
func (c *Client) Close() error { return nil }

func (c *Client) newRetryBackoff() backoff.BackOff {
	// BackOff implementations are stateful; always return a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.MaxElapsed
	return bo
}

// retryableStatus reports whether a response status is worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// do executes an authenticated request against path (already including the
// REST prefix), retrying transient failures, and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("jira URL not configured")
	}
	if c.APIToken == "" {
		return nil, fmt.Errorf("jira API token not configured")
	}

	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	var respBody []byte
	op := func() error {
		var err error
		respBody, err = c.doOnce(ctx, method, c.BaseURL+path, reqBody)
		if err == nil {
			return nil
		}
		telemetry.CountError(ctx, method)
		var rle *RateLimitError
		if errors.As(err, &rle) {
			// Honor Retry-After before handing control back to the
			// exponential schedule.
			if rle.RetryAfter > 0 {
				select {
				case <-time.After(rle.RetryAfter):
				case <-ctx.Done():
					return backoff.Permanent(ctx.Err())
				}
			}
			return err
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && retryableStatus(apiErr.StatusCode) {
			return err
		}
		if isNetworkError(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(op, backoff.WithContext(c.newRetryBackoff(), ctx)); err != nil {
		return nil, err
	}
	return respBody, nil
}

// doOnce performs a single HTTP round trip and maps non-2xx responses to
// typed errors.
func (c *Client) doOnce(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.setAuth(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jira-as/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	telemetry.CountRequest(ctx, method)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	return nil, errorFromResponse(resp.StatusCode, resp.Header, respBody, url)
}

// errorFromResponse maps an HTTP error response to the SDK error taxonomy.
func errorFromResponse(code int, header http.Header, body []byte, url string) error {
	switch {
	case code == http.StatusNotFound:
		return &NotFoundError{Resource: describeResource(url)}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return &AuthError{StatusCode: code, Message: firstErrorMessage(body)}
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		ve := &ValidationError{}
		parseErrorBody(body, ve)
		return ve
	case code == http.StatusTooManyRequests:
		retryAfter := time.Duration(0)
		if s := header.Get("Retry-After"); s != "" {
			if secs, err := strconv.Atoi(s); err == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return &RateLimitError{RetryAfter: retryAfter}
	default:
		return &APIError{StatusCode: code, Body: string(body)}
	}
}

// parseErrorBody fills a ValidationError from Jira's standard error payload:
// {"errorMessages": [...], "errors": {"field": "message"}}
func parseErrorBody(body []byte, ve *ValidationError) {
	var parsed struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		if len(body) > 0 {
			ve.Messages = []string{string(body)}
		}
		return
	}
	ve.Messages = parsed.ErrorMessages
	ve.Fields = parsed.Errors
}

func firstErrorMessage(body []byte) string {
	var parsed struct {
		ErrorMessages []string `json:"errorMessages"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.ErrorMessages) > 0 {
		return parsed.ErrorMessages[0]
	}
	return ""
}

// describeResource extracts a readable resource name from a request URL for
// NotFoundError messages, e.g. ".../issue/PROJ-1" -> "issue PROJ-1".
func describeResource(url string) string {
	url, _, _ = strings.Cut(url, "?")
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + " " + parts[len(parts)-1]
	}
	return url
}

// setAuth sets the appropriate authentication header on the request.
// Jira Cloud uses basic auth with email:token; server installs use a
// bearer PAT.
func (c *Client) setAuth(req *http.Request) {
	if strings.Contains(c.BaseURL, "atlassian.net") || c.Email != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.Email + ":" + c.APIToken))
		req.Header.Set("Authorization", "Basic "+auth)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.APIToken)
	}
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout")
}

// getJSON performs a GET and unmarshals the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// postJSON performs a POST and unmarshals the response into out (out may be nil).
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// putJSON performs a PUT; Jira PUTs mostly return 204 No Content.
func (c *Client) putJSON(ctx context.Context, path string, payload, out any) error {
	body, err := c.do(ctx, http.MethodPut, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) deleteReq(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}
