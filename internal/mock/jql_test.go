package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jira-assistant/jira-as/internal/jira"
)

func searchKeys(t *testing.T, c *Client, jql string) []string {
	t.Helper()
	issues, err := c.SearchAll(context.Background(), jql, nil)
	require.NoError(t, err)
	keys := make([]string, len(issues))
	for i, issue := range issues {
		keys[i] = issue.Key
	}
	return keys
}

func TestSearchByProject(t *testing.T) {
	c := NewClient()
	keys := searchKeys(t, c, "project = DEMO ORDER BY created DESC")
	assert.Equal(t, []string{"DEMO-84", "DEMO-85", "DEMO-86", "DEMO-87", "DEMO-91"}, keys)
}

func TestSearchByIssueType(t *testing.T) {
	c := NewClient()
	assert.Equal(t, []string{"DEMO-86", "DEMO-91"}, searchKeys(t, c, "project = DEMO AND issuetype = Bug"))
	assert.Equal(t, []string{"DEMO-84"}, searchKeys(t, c, "issuetype = Epic"))
}

func TestSearchByStatus(t *testing.T) {
	c := NewClient()
	ctx := context.Background()
	require.NoError(t, c.TransitionIssue(ctx, "DEMO-85", "21", nil))

	assert.Equal(t, []string{"DEMO-85"}, searchKeys(t, c, `status = "In Progress"`))
	assert.NotContains(t, searchKeys(t, c, "status = Done"), "DEMO-85")
}

func TestSearchByAssignee(t *testing.T) {
	c := NewClient()
	assert.Equal(t, []string{"DEMO-86", "DEMO-87"}, searchKeys(t, c, `assignee = "Jane Manager"`))
	assert.Equal(t, []string{"DEMO-91"}, searchKeys(t, c, `reporter = "Jane Manager"`))
}

func TestSearchByText(t *testing.T) {
	c := NewClient()
	assert.Equal(t, []string{"DEMO-86"}, searchKeys(t, c, `text ~ "safari"`))
	assert.Empty(t, searchKeys(t, c, `text ~ "nonexistent"`))
}

func TestSearchPagination(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	page, err := c.SearchIssues(ctx, "project = DEMO", &jira.SearchOptions{StartAt: 0, MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Issues, 2)
	assert.Equal(t, "DEMO-84", page.Issues[0].Key)

	page, err = c.SearchIssues(ctx, "project = DEMO", &jira.SearchOptions{StartAt: 4, MaxResults: 2})
	require.NoError(t, err)
	require.Len(t, page.Issues, 1)
	assert.Equal(t, "DEMO-91", page.Issues[0].Key)

	page, err = c.SearchIssues(ctx, "project = DEMO", &jira.SearchOptions{StartAt: 10, MaxResults: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Issues)
}

func TestSearchFindsCreatedIssues(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	_, err := c.CreateIssue(ctx, map[string]any{
		"project":   map[string]any{"key": "DEMO"},
		"summary":   "Checkout flow broken",
		"issuetype": map[string]any{"name": "Bug"},
	})
	require.NoError(t, err)

	assert.Contains(t, searchKeys(t, c, `text ~ "checkout"`), "DEMO-101")
	assert.Contains(t, searchKeys(t, c, "issuetype = Bug"), "DEMO-101")
}
