package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// defaultFields is the field set requested when the caller doesn't specify one.
var defaultFields = []string{
	"summary", "description", "status", "priority", "issuetype", "project",
	"assignee", "reporter", "labels", "created", "updated", "resolution",
}

func fieldsParam(fields []string) string {
	if len(fields) == 0 {
		fields = defaultFields
	}
	return strings.Join(fields, ",")
}

// GetIssue fetches a single issue by key (e.g. "PROJ-123"). A nil fields
// slice requests the default field set; pass []string{"*all"} for everything.
func (c *Client) GetIssue(ctx context.Context, key string, fields []string) (*Issue, error) {
	path := fmt.Sprintf("%s/issue/%s?fields=%s", apiPrefix, url.PathEscape(key), url.QueryEscape(fieldsParam(fields)))

	var issue Issue
	if err := c.getJSON(ctx, path, &issue); err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}
	return &issue, nil
}

// CreateIssue creates a new issue. fields must include "project", "summary",
// and "issuetype"; description should already be ADF (see TextToADF).
func (c *Client) CreateIssue(ctx context.Context, fields map[string]any) (*CreatedIssue, error) {
	payload := map[string]any{"fields": fields}

	var created CreatedIssue
	if err := c.postJSON(ctx, apiPrefix+"/issue", payload, &created); err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return &created, nil
}

// CreateIssuesBulk creates up to 50 issues in one request. Failures are
// reported per element; a partially successful call is not an error.
func (c *Client) CreateIssuesBulk(ctx context.Context, issues []map[string]any) (*BulkCreateResult, error) {
	updates := make([]map[string]any, len(issues))
	for i, fields := range issues {
		updates[i] = map[string]any{"fields": fields}
	}
	payload := map[string]any{"issueUpdates": updates}

	var result BulkCreateResult
	if err := c.postJSON(ctx, apiPrefix+"/issue/bulk", payload, &result); err != nil {
		return nil, fmt.Errorf("bulk create issues: %w", err)
	}
	return &result, nil
}

// UpdateIssue updates issue fields by key.
func (c *Client) UpdateIssue(ctx context.Context, key string, fields map[string]any) error {
	payload := map[string]any{"fields": fields}
	if err := c.putJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key), payload, nil); err != nil {
		return fmt.Errorf("update issue %s: %w", key, err)
	}
	return nil
}

// DeleteIssue removes an issue, optionally cascading to its subtasks.
func (c *Client) DeleteIssue(ctx context.Context, key string, deleteSubtasks bool) error {
	path := fmt.Sprintf("%s/issue/%s?deleteSubtasks=%t", apiPrefix, url.PathEscape(key), deleteSubtasks)
	if err := c.deleteReq(ctx, path); err != nil {
		return fmt.Errorf("delete issue %s: %w", key, err)
	}
	return nil
}

// AssignIssue assigns an issue to the given account. An empty accountID
// unassigns the issue.
func (c *Client) AssignIssue(ctx context.Context, key, accountID string) error {
	var payload map[string]any
	if accountID == "" {
		payload = map[string]any{"accountId": nil}
	} else {
		payload = map[string]any{"accountId": accountID}
	}
	if err := c.putJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/assignee", payload, nil); err != nil {
		return fmt.Errorf("assign issue %s: %w", key, err)
	}
	return nil
}

// GetTransitions lists the workflow transitions currently available on an issue.
func (c *Client) GetTransitions(ctx context.Context, key string) ([]Transition, error) {
	var result struct {
		Transitions []Transition `json:"transitions"`
	}
	if err := c.getJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/transitions", &result); err != nil {
		return nil, fmt.Errorf("get transitions for %s: %w", key, err)
	}
	return result.Transitions, nil
}

// TransitionIssue moves an issue through the named workflow transition.
// fields, when non-nil, is applied as part of the transition (e.g. setting
// a resolution while closing).
func (c *Client) TransitionIssue(ctx context.Context, key, transitionID string, fields map[string]any) error {
	payload := map[string]any{
		"transition": map[string]any{"id": transitionID},
	}
	if len(fields) > 0 {
		payload["fields"] = fields
	}
	if err := c.postJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/transitions", payload, nil); err != nil {
		return fmt.Errorf("transition issue %s: %w", key, err)
	}
	return nil
}

// NotifyIssue sends an issue notification to its watchers and assignee.
func (c *Client) NotifyIssue(ctx context.Context, key, subject, body string) error {
	payload := map[string]any{
		"subject":  subject,
		"textBody": body,
		"to": map[string]any{
			"watchers": true,
			"assignee": true,
			"reporter": true,
		},
	}
	if err := c.postJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/notify", payload, nil); err != nil {
		return fmt.Errorf("notify issue %s: %w", key, err)
	}
	return nil
}

// GetWatchers lists the users watching an issue.
func (c *Client) GetWatchers(ctx context.Context, key string) ([]User, error) {
	var result struct {
		Watchers []User `json:"watchers"`
	}
	if err := c.getJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/watchers", &result); err != nil {
		return nil, fmt.Errorf("get watchers for %s: %w", key, err)
	}
	return result.Watchers, nil
}

// AddWatcher adds a user to an issue's watcher list. The watchers endpoint
// takes the bare account id as a JSON string body.
func (c *Client) AddWatcher(ctx context.Context, key, accountID string) error {
	if _, err := c.do(ctx, http.MethodPost, apiPrefix+"/issue/"+url.PathEscape(key)+"/watchers", accountID); err != nil {
		return fmt.Errorf("add watcher to %s: %w", key, err)
	}
	return nil
}

// RemoveWatcher removes a user from an issue's watcher list.
func (c *Client) RemoveWatcher(ctx context.Context, key, accountID string) error {
	path := fmt.Sprintf("%s/issue/%s/watchers?accountId=%s", apiPrefix, url.PathEscape(key), url.QueryEscape(accountID))
	if err := c.deleteReq(ctx, path); err != nil {
		return fmt.Errorf("remove watcher from %s: %w", key, err)
	}
	return nil
}
