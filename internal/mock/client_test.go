package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jira-assistant/jira-as/internal/jira"
)

func TestSeededIssues(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	issue, err := c.GetIssue(ctx, "DEMO-86", nil)
	require.NoError(t, err)
	assert.Equal(t, "10086", issue.ID)
	assert.Equal(t, "Login fails on mobile Safari", issue.Fields.Summary)
	assert.Equal(t, "Bug", issue.Fields.IssueType.Name)
	assert.Equal(t, "def456", issue.Fields.Assignee.AccountID)
	assert.Equal(t, "To Do", issue.Fields.Status.Name)

	_, err = c.GetIssue(ctx, "DEMO-999", nil)
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateIssueNumbering(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	created, err := c.CreateIssue(ctx, map[string]any{
		"project":   map[string]any{"key": "DEMO"},
		"summary":   "First new issue",
		"issuetype": map[string]any{"name": "Task"},
	})
	require.NoError(t, err)
	assert.Equal(t, "DEMO-101", created.Key)
	assert.Equal(t, "10101", created.ID)

	second, err := c.CreateIssue(ctx, map[string]any{
		"project": map[string]any{"key": "DEMO"},
		"summary": "Second new issue",
	})
	require.NoError(t, err)
	assert.Equal(t, "DEMO-102", second.Key)

	issue, err := c.GetIssue(ctx, "DEMO-101", nil)
	require.NoError(t, err)
	assert.Equal(t, "First new issue", issue.Fields.Summary)
	assert.Equal(t, "Jason Krueger", issue.Fields.Reporter.DisplayName)
	assert.Equal(t, writeTime, issue.Fields.Created)
}

func TestCreateIssuesBulk(t *testing.T) {
	c := NewClient()

	result, err := c.CreateIssuesBulk(context.Background(), []map[string]any{
		{"project": map[string]any{"key": "DEMO"}, "summary": "one"},
		nil,
		{"project": map[string]any{"key": "DEMO"}, "summary": "two"},
	})
	require.NoError(t, err)
	require.Len(t, result.Issues, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "DEMO-101", result.Issues[0].Key)
	assert.Equal(t, "DEMO-102", result.Issues[1].Key)
	assert.Equal(t, 1, result.Errors[0].FailedElementNumber)
}

func TestUpdateIssue(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	err := c.UpdateIssue(ctx, "DEMO-87", map[string]any{
		"summary":  "Rewrite API documentation",
		"labels":   []any{"docs", "api"},
		"priority": map[string]any{"name": "High"},
	})
	require.NoError(t, err)

	issue, err := c.GetIssue(ctx, "DEMO-87", nil)
	require.NoError(t, err)
	assert.Equal(t, "Rewrite API documentation", issue.Fields.Summary)
	assert.Equal(t, []string{"docs", "api"}, issue.Fields.Labels)
	assert.Equal(t, "High", issue.Fields.Priority.Name)
	assert.Equal(t, writeTime, issue.Fields.Updated)
}

func TestAssignIssue(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.AssignIssue(ctx, "DEMO-85", "def456"))
	issue, err := c.GetIssue(ctx, "DEMO-85", nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Manager", issue.Fields.Assignee.DisplayName)

	require.NoError(t, c.AssignIssue(ctx, "DEMO-85", ""))
	issue, err = c.GetIssue(ctx, "DEMO-85", nil)
	require.NoError(t, err)
	assert.Nil(t, issue.Fields.Assignee)
}

func TestTransitions(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	transitions, err := c.GetTransitions(ctx, "DEMO-85")
	require.NoError(t, err)
	require.Len(t, transitions, 3)
	assert.Equal(t, "21", transitions[1].ID)
	assert.Equal(t, "In Progress", transitions[1].To.Name)

	require.NoError(t, c.TransitionIssue(ctx, "DEMO-85", "21", nil))
	issue, err := c.GetIssue(ctx, "DEMO-85", nil)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", issue.Fields.Status.Name)

	// An id outside the workflow table leaves the issue untouched.
	require.NoError(t, c.TransitionIssue(ctx, "DEMO-85", "99", nil))
	issue, err = c.GetIssue(ctx, "DEMO-85", nil)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", issue.Fields.Status.Name)
}

func TestDeleteIssueCascades(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	_, err := c.AddComment(ctx, "DEMO-86", jira.TextToADF("investigating"))
	require.NoError(t, err)
	require.NoError(t, c.LinkIssues(ctx, "DEMO-86", "DEMO-85", "Blocks"))
	require.NoError(t, c.DeleteIssue(ctx, "DEMO-86", false))

	_, err = c.GetIssue(ctx, "DEMO-86", nil)
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)

	// The link is gone from the surviving issue too.
	issue, err := c.GetIssue(ctx, "DEMO-85", nil)
	require.NoError(t, err)
	assert.Empty(t, issue.Fields.IssueLinks)
}

func TestAssignUnknownAccountID(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.AssignIssue(ctx, "DEMO-84", "xyz999"))
	issue, err := c.GetIssue(ctx, "DEMO-84", nil)
	require.NoError(t, err)
	assert.Equal(t, "xyz999", issue.Fields.Assignee.AccountID)
	assert.Equal(t, "Unknown User", issue.Fields.Assignee.DisplayName)
}
