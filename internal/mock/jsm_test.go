package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jira-assistant/jira-as/internal/jira"
)

func TestServiceDesksAndRequestTypes(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	desks, err := c.GetServiceDesks(ctx)
	require.NoError(t, err)
	require.Len(t, desks, 1)
	assert.Equal(t, "DEMOSD", desks[0].ProjectKey)

	types, err := c.GetRequestTypes(ctx, "1")
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "IT help", types[0].Name)

	_, err = c.GetRequestTypes(ctx, "9")
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateRequest(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	request, err := c.CreateRequest(ctx, "1", "10", "VPN not connecting", "Fails since this morning")
	require.NoError(t, err)
	assert.Equal(t, "DEMOSD-101", request.IssueKey)
	assert.Equal(t, "Waiting for support", request.CurrentStatus.Status)

	// The request is also a real issue, visible to issue and search calls.
	issue, err := c.GetIssue(ctx, "DEMOSD-101", nil)
	require.NoError(t, err)
	assert.Equal(t, "VPN not connecting", issue.Fields.Summary)

	fetched, err := c.GetRequest(ctx, "DEMOSD-101")
	require.NoError(t, err)
	assert.Equal(t, "10", fetched.RequestTypeID)

	_, err = c.CreateRequest(ctx, "1", "99", "bad type", "")
	var ve *jira.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRequestCounterSharedWithIssues(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	created, err := c.CreateIssue(ctx, map[string]any{
		"project": map[string]any{"key": "DEMO"},
		"summary": "before the request",
	})
	require.NoError(t, err)
	assert.Equal(t, "DEMO-101", created.Key)

	request, err := c.CreateRequest(ctx, "1", "10", "after the issue", "")
	require.NoError(t, err)
	assert.Equal(t, "DEMOSD-102", request.IssueKey)
}

func TestQueues(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	_, err := c.CreateRequest(ctx, "1", "10", "Printer jam", "")
	require.NoError(t, err)

	queues, err := c.GetQueues(ctx, "1")
	require.NoError(t, err)
	require.Len(t, queues, 2)
	assert.Equal(t, 1, queues[0].IssueCount)
	assert.Equal(t, 0, queues[1].IssueCount)

	issues, err := c.GetQueueIssues(ctx, "1", "1")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "DEMOSD-101", issues[0].Key)

	_, err = c.GetQueueIssues(ctx, "1", "9")
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestApprovalFlow(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	// Bug reports start in the approval queue.
	request, err := c.CreateRequest(ctx, "1", "11", "Data loss on save", "")
	require.NoError(t, err)
	key := request.IssueKey
	assert.Equal(t, "Waiting for approval", request.CurrentStatus.Status)

	approvals, err := c.GetApprovals(ctx, key)
	require.NoError(t, err)
	require.Len(t, approvals, 1)
	assert.Equal(t, "pending", approvals[0].FinalDecision)
	assert.True(t, approvals[0].CanAnswer)

	err = c.AnswerApproval(ctx, key, approvals[0].ID, "escalate")
	var ve *jira.ValidationError
	require.ErrorAs(t, err, &ve)

	require.NoError(t, c.AnswerApproval(ctx, key, approvals[0].ID, "approve"))

	approvals, err = c.GetApprovals(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "approved", approvals[0].FinalDecision)
	assert.False(t, approvals[0].CanAnswer)

	fetched, err := c.GetRequest(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", fetched.CurrentStatus.Status)

	// A decided approval can't be answered again.
	err = c.AnswerApproval(ctx, key, approvals[0].ID, "decline")
	require.ErrorAs(t, err, &ve)
}

func TestSLA(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	request, err := c.CreateRequest(ctx, "1", "10", "Laptop replacement", "")
	require.NoError(t, err)

	slas, err := c.GetSLA(ctx, request.IssueKey)
	require.NoError(t, err)
	require.Len(t, slas, 2)
	assert.Equal(t, "Time to first response", slas[0].Name)
	assert.False(t, slas[0].Breached)

	_, err = c.GetSLA(ctx, "DEMO-84")
	var nf *jira.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestOrganizations(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	org, err := c.CreateOrganization(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, 1, org.ID)

	require.NoError(t, c.AddUsersToOrganization(ctx, org.ID, []string{"abc123", "def456", "abc123"}))
	users, err := c.GetOrganizationUsers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)

	require.NoError(t, c.RemoveUsersFromOrganization(ctx, org.ID, []string{"abc123"}))
	users, err = c.GetOrganizationUsers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Jane Manager", users[0].DisplayName)

	orgs, err := c.GetOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)

	_, err = c.CreateOrganization(ctx, "")
	var ve *jira.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestCustomers(t *testing.T) {
	c := NewClient()
	ctx := context.Background()

	require.NoError(t, c.AddCustomers(ctx, "1", []string{"abc123", "ghi789"}))
	customers, err := c.GetCustomers(ctx, "1")
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Unknown User", customers[1].DisplayName)
}
