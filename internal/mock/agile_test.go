package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jira-assistant/jira-as/internal/jira"
)

func TestBoardsAndSprints(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	boards, err := c.GetAllBoards(ctx, "")
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, "DEMO board", boards[0].Name)

	sprints, err := c.GetBoardSprints(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, sprints, 2)
	assert.Equal(t, "active", sprints[0].State)

	active, err := c.GetBoardSprints(ctx, 1, "active")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Sprint 1", active[0].Name)

	_, err = c.GetBoard(ctx, 9)
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateAndUpdateSprint(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	sprint, err := c.CreateSprint(ctx, 1, "Sprint 3", "Stabilize search")
	require.NoError(t, err)
	assert.Equal(t, 3, sprint.ID)
	assert.Equal(t, "future", sprint.State)

	updated, err := c.UpdateSprint(ctx, sprint.ID, map[string]any{"state": "active"})
	require.NoError(t, err)
	assert.Equal(t, "active", updated.State)
	assert.Equal(t, writeTime, updated.StartDate)

	updated, err = c.UpdateSprint(ctx, sprint.ID, map[string]any{"state": "closed"})
	require.NoError(t, err)
	assert.Equal(t, writeTime, updated.CompleteDate)

	_, err = c.UpdateSprint(ctx, sprint.ID, map[string]any{"state": "paused"})
	var ve *jira.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSprintMembershipAndBacklog(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.MoveIssuesToSprint(ctx, 1, []string{"DEMO-85", "DEMO-86"}))

	backlog, err := c.GetBacklogIssues(ctx, 1)
	require.NoError(t, err)
	keys := make([]string, len(backlog))
	for i, issue := range backlog {
		keys[i] = issue.Key
	}
	assert.Equal(t, []string{"DEMO-84", "DEMO-87", "DEMO-91"}, keys)

	// Moving to another sprint removes the issue from the first.
	require.NoError(t, c.MoveIssuesToSprint(ctx, 2, []string{"DEMO-85"}))
	assert.Equal(t, []string{"DEMO-86"}, c.sprintIssues[1])
	assert.Equal(t, []string{"DEMO-85"}, c.sprintIssues[2])

	err = c.MoveIssuesToSprint(ctx, 1, []string{"DEMO-404"})
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestEpicIssues(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.UpdateIssue(ctx, "DEMO-85", map[string]any{"customfield_10014": "DEMO-84"}))

	issues, err := c.GetEpicIssues(ctx, "DEMO-84")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "DEMO-85", issues[0].Key)

	_, err = c.GetEpicIssues(ctx, "DEMO-86")
	var ve *jira.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRankIssues(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.RankIssues(ctx, []string{"DEMO-85"}, "DEMO-86", ""))

	err := c.RankIssues(ctx, []string{"DEMO-85"}, "", "")
	var ve *jira.ValidationError
	require.ErrorAs(t, err, &ve)

	err = c.RankIssues(ctx, []string{"DEMO-85"}, "DEMO-404", "")
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}
