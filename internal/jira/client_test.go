package jira

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "user@example.com", "secret-token")
	c.MaxElapsed = 2 * time.Second
	return c
}

func TestGetIssue(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"10086","key":"DEMO-86","fields":{"summary":"Login fails on mobile Safari","status":{"id":"10000","name":"To Do"}}}`))
	}))

	issue, err := c.GetIssue(context.Background(), "DEMO-86", nil)
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if issue.Key != "DEMO-86" || issue.Fields.Summary != "Login fails on mobile Safari" {
		t.Errorf("issue = %+v", issue)
	}
	if gotPath != "/rest/api/3/issue/DEMO-86" {
		t.Errorf("path = %q", gotPath)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("user@example.com:secret-token"))
	if gotAuth != wantAuth {
		t.Errorf("Authorization = %q, want %q", gotAuth, wantAuth)
	}
}

func TestGetIssueNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessages":["Issue does not exist"]}`))
	}))

	_, err := c.GetIssue(context.Background(), "DEMO-404", nil)
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nfe.Resource != "issue DEMO-404" {
		t.Errorf("Resource = %q, want %q", nfe.Resource, "issue DEMO-404")
	}
}

func TestAuthErrorNotRetried(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorMessages":["token expired"]}`))
	}))

	_, err := c.GetIssue(context.Background(), "DEMO-86", nil)
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if ae.Message != "token expired" {
		t.Errorf("Message = %q", ae.Message)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (auth failures must not retry)", attempts)
	}
}

func TestValidationErrorNotRetried(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorMessages":["summary is required"],"errors":{"priority":"unknown"}}`))
	}))

	_, err := c.CreateIssue(context.Background(), map[string]any{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if len(ve.Messages) != 1 || ve.Messages[0] != "summary is required" {
		t.Errorf("Messages = %v", ve.Messages)
	}
	if ve.Fields["priority"] != "unknown" {
		t.Errorf("Fields = %v", ve.Fields)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestServerErrorRetried(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":"10085","key":"DEMO-85","fields":{"summary":"User Authentication"}}`))
	}))

	issue, err := c.GetIssue(context.Background(), "DEMO-85", nil)
	if err != nil {
		t.Fatalf("GetIssue after retries: %v", err)
	}
	if issue.Key != "DEMO-85" {
		t.Errorf("Key = %q", issue.Key)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRateLimitRetryAfter(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id":"10085","key":"DEMO-85","fields":{}}`))
	}))

	if _, err := c.GetIssue(context.Background(), "DEMO-85", nil); err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestUpdateIssueNoContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.UpdateIssue(context.Background(), "DEMO-85", map[string]any{"summary": "renamed"})
	if err != nil {
		t.Fatalf("UpdateIssue: %v", err)
	}
}

func TestSearchAllPagination(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
		switch startAt {
		case 0:
			w.Write([]byte(`{"startAt":0,"maxResults":100,"total":3,"issues":[{"id":"1","key":"DEMO-1","fields":{}},{"id":"2","key":"DEMO-2","fields":{}}]}`))
		case 2:
			w.Write([]byte(`{"startAt":2,"maxResults":100,"total":3,"issues":[{"id":"3","key":"DEMO-3","fields":{}}]}`))
		default:
			t.Errorf("unexpected startAt %d", startAt)
			w.Write([]byte(`{"startAt":0,"maxResults":100,"total":3,"issues":[]}`))
		}
	}))

	issues, err := c.SearchAll(context.Background(), "project = DEMO", nil)
	if err != nil {
		t.Fatalf("SearchAll: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("got %d issues, want 3", len(issues))
	}
	if issues[2].Key != "DEMO-3" {
		t.Errorf("last key = %q", issues[2].Key)
	}
}

func TestBearerAuthForServerInstalls(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"accountId":"abc123","displayName":"Jason Krueger"}`))
	}))
	defer server.Close()

	// No email configured: the client should fall back to a bearer token.
	c := NewClient(server.URL, "", "pat-token")
	if _, err := c.GetCurrentUser(context.Background()); err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if gotAuth != "Bearer pat-token" {
		t.Errorf("Authorization = %q, want Bearer", gotAuth)
	}
}

func TestMissingConfiguration(t *testing.T) {
	c := NewClient("", "", "")
	if _, err := c.GetIssue(context.Background(), "DEMO-85", nil); err == nil {
		t.Error("expected error for unconfigured client")
	}

	c = NewClient("http://example.invalid", "", "")
	if _, err := c.GetIssue(context.Background(), "DEMO-85", nil); err == nil {
		t.Error("expected error for missing token")
	}
}
