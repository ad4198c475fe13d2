package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jira-assistant/jira-as/internal/jira"
)

func TestComments(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	comment, err := c.AddComment(ctx, "DEMO-85", jira.TextToADF("first note"))
	require.NoError(t, err)
	assert.Equal(t, "1", comment.ID)
	assert.Equal(t, "Jason Krueger", comment.Author.DisplayName)

	_, err = c.AddComment(ctx, "DEMO-85", jira.TextToADF("second note"))
	require.NoError(t, err)

	page, err := c.GetComments(ctx, "DEMO-85", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Comments, 2)

	updated, err := c.UpdateComment(ctx, "DEMO-85", "1", jira.TextToADF("revised note"))
	require.NoError(t, err)
	assert.Equal(t, "revised note", jira.ADFToText(updated.Body))

	require.NoError(t, c.DeleteComment(ctx, "DEMO-85", "1"))
	page, err = c.GetComments(ctx, "DEMO-85", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	// Deleting an absent comment succeeds.
	require.NoError(t, c.DeleteComment(ctx, "DEMO-85", "42"))

	_, err = c.GetComment(ctx, "DEMO-85", "1")
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestWorklogs(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	wl, err := c.AddWorklog(ctx, "DEMO-86", jira.WorklogInput{TimeSpentSeconds: 5400})
	require.NoError(t, err)
	assert.Equal(t, "90m", wl.TimeSpent)
	assert.Equal(t, writeTime, wl.Started)

	wl, err = c.AddWorklog(ctx, "DEMO-86", jira.WorklogInput{TimeSpent: "2h", TimeSpentSeconds: 7200})
	require.NoError(t, err)
	assert.Equal(t, "2h", wl.TimeSpent)

	page, err := c.GetWorklogs(ctx, "DEMO-86", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	require.NoError(t, c.DeleteWorklog(ctx, "DEMO-86", "1"))
	page, err = c.GetWorklogs(ctx, "DEMO-86", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestWatchers(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.AddWatcher(ctx, "DEMO-87", "def456"))
	require.NoError(t, c.AddWatcher(ctx, "DEMO-87", "def456"))

	watchers, err := c.GetWatchers(ctx, "DEMO-87")
	require.NoError(t, err)
	require.Len(t, watchers, 1)
	assert.Equal(t, "Jane Manager", watchers[0].DisplayName)

	require.NoError(t, c.RemoveWatcher(ctx, "DEMO-87", "def456"))
	watchers, err = c.GetWatchers(ctx, "DEMO-87")
	require.NoError(t, err)
	assert.Empty(t, watchers)
}

func TestLinks(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.LinkIssues(ctx, "DEMO-86", "DEMO-85", "Blocks"))

	issue, err := c.GetIssue(ctx, "DEMO-85", nil)
	require.NoError(t, err)
	require.Len(t, issue.Fields.IssueLinks, 1)
	link := issue.Fields.IssueLinks[0]
	assert.Equal(t, "Blocks", link.Type.Name)
	assert.Equal(t, "DEMO-86", link.InwardIssue.Key)
	assert.Equal(t, "DEMO-85", link.OutwardIssue.Key)

	err = c.LinkIssues(ctx, "DEMO-86", "DEMO-85", "Fixes")
	var ve *jira.ValidationError
	require.ErrorAs(t, err, &ve)

	err = c.LinkIssues(ctx, "DEMO-86", "DEMO-404", "Blocks")
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)

	require.NoError(t, c.DeleteLink(ctx, link.ID))
	issue, err = c.GetIssue(ctx, "DEMO-85", nil)
	require.NoError(t, err)
	assert.Empty(t, issue.Fields.IssueLinks)

	require.ErrorAs(t, c.DeleteLink(ctx, link.ID), &nf)
}
