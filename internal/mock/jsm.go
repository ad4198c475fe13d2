package mock

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// GetServiceDesks lists the seed service desks.
func (c *Client) GetServiceDesks(_ context.Context) ([]jira.ServiceDesk, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]jira.ServiceDesk, len(c.serviceDesks))
	copy(out, c.serviceDesks)
	return out, nil
}

// GetRequestTypes lists the request types for a service desk.
func (c *Client) GetRequestTypes(_ context.Context, serviceDeskID string) ([]jira.RequestType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.serviceDesk(serviceDeskID); err != nil {
		return nil, err
	}
	var out []jira.RequestType
	for _, rt := range c.requestTypes {
		if rt.ServiceDesk == serviceDeskID {
			out = append(out, rt)
		}
	}
	return out, nil
}

// CreateRequest files a customer request. The request shares the issue
// counter with CreateIssue and lands in the service desk project, so a
// fresh mock produces DEMOSD-101.
func (c *Client) CreateRequest(_ context.Context, serviceDeskID, requestTypeID, summary, description string) (*jira.Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	desk, err := c.serviceDesk(serviceDeskID)
	if err != nil {
		return nil, err
	}
	if !c.knownRequestType(serviceDeskID, requestTypeID) {
		return nil, &jira.ValidationError{Messages: []string{"unknown request type " + requestTypeID}}
	}

	c.nextIssueNum++
	id := strconv.Itoa(10000 + c.nextIssueNum)
	key := fmt.Sprintf("%s-%d", desk.ProjectKey, c.nextIssueNum)

	// Bug reports route through manager approval; other types go straight
	// to the support queue.
	status := &jira.RequestStatus{Status: "Waiting for support", Category: "new"}
	if requestTypeID == "11" {
		status = &jira.RequestStatus{Status: "Waiting for approval", Category: "new"}
	}
	reporter := seedUsers[currentUserID]
	project, err := findSeedProject(desk.ProjectKey)
	if err != nil {
		return nil, err
	}

	issue := &jira.Issue{
		ID:   id,
		Key:  key,
		Self: fmt.Sprintf("%s/rest/api/3/issue/%s", c.BaseURL, id),
		Fields: jira.IssueFields{
			Summary:     summary,
			Description: jira.TextToADF(description),
			IssueType:   &jira.IssueType{ID: "10010", Name: "Service Request"},
			Status:      &jira.Status{ID: "10010", Name: status.Status},
			Priority:    &jira.Priority{ID: "3", Name: "Medium"},
			Reporter:    &reporter,
			Project:     project,
			Created:     writeTime,
			Updated:     writeTime,
		},
	}
	c.issues[key] = issue

	request := &jira.Request{
		IssueID:       id,
		IssueKey:      key,
		RequestTypeID: requestTypeID,
		ServiceDeskID: serviceDeskID,
		Summary:       summary,
		CurrentStatus: status,
		Reporter:      &reporter,
		CreatedDate:   writeTime,
	}
	c.requests[key] = request
	if status.Status == "Waiting for approval" {
		c.approvals[key] = []jira.Approval{
			{ID: "1", Name: "Manager approval", FinalDecision: "pending", CanAnswer: true},
		}
	}

	out := *request
	return &out, nil
}

// GetRequest fetches the request view of an issue.
func (c *Client) GetRequest(_ context.Context, issueKey string) (*jira.Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	request, ok := c.requests[issueKey]
	if !ok {
		return nil, &jira.NotFoundError{Resource: "request " + issueKey}
	}
	out := *request
	return &out, nil
}

// GetQueues lists a service desk's queues with live issue counts.
func (c *Client) GetQueues(_ context.Context, serviceDeskID string) ([]jira.Queue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.serviceDesk(serviceDeskID); err != nil {
		return nil, err
	}
	out := make([]jira.Queue, len(c.queues))
	copy(out, c.queues)
	for i := range out {
		out[i].IssueCount = len(c.queueIssuesLocked(out[i].ID))
	}
	return out, nil
}

// GetQueueIssues lists the issues in a queue. The mock approximates queue
// JQL: queue 1 holds all open DEMOSD issues, queue 2 those waiting for
// approval.
func (c *Client) GetQueueIssues(_ context.Context, serviceDeskID, queueID string) ([]jira.Issue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.serviceDesk(serviceDeskID); err != nil {
		return nil, err
	}
	found := false
	for _, q := range c.queues {
		if q.ID == queueID {
			found = true
			break
		}
	}
	if !found {
		return nil, &jira.NotFoundError{Resource: "queue " + queueID}
	}
	return c.queueIssuesLocked(queueID), nil
}

func (c *Client) queueIssuesLocked(queueID string) []jira.Issue {
	var out []jira.Issue
	for key, issue := range c.issues {
		if !strings.HasPrefix(key, "DEMOSD-") {
			continue
		}
		status := ""
		if issue.Fields.Status != nil {
			status = issue.Fields.Status.Name
		}
		switch queueID {
		case "1":
			if status != "Done" {
				out = append(out, *issue)
			}
		case "2":
			if status == "Waiting for approval" {
				out = append(out, *issue)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetApprovals lists the approvals recorded against a request.
func (c *Client) GetApprovals(_ context.Context, issueKey string) ([]jira.Approval, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.requests[issueKey]; !ok {
		return nil, &jira.NotFoundError{Resource: "request " + issueKey}
	}
	out := make([]jira.Approval, len(c.approvals[issueKey]))
	copy(out, c.approvals[issueKey])
	return out, nil
}

// AnswerApproval records an approve or decline decision. Answering moves
// the request out of its waiting state.
func (c *Client) AnswerApproval(_ context.Context, issueKey, approvalID, decision string) error {
	if decision != "approve" && decision != "decline" {
		return &jira.ValidationError{Messages: []string{"decision must be approve or decline"}}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	request, ok := c.requests[issueKey]
	if !ok {
		return &jira.NotFoundError{Resource: "request " + issueKey}
	}
	approvals := c.approvals[issueKey]
	for i := range approvals {
		if approvals[i].ID != approvalID {
			continue
		}
		if approvals[i].FinalDecision != "pending" {
			return &jira.ValidationError{Messages: []string{"approval " + approvalID + " already answered"}}
		}
		if decision == "approve" {
			approvals[i].FinalDecision = "approved"
			request.CurrentStatus = &jira.RequestStatus{Status: "In Progress", Category: "indeterminate"}
		} else {
			approvals[i].FinalDecision = "declined"
			request.CurrentStatus = &jira.RequestStatus{Status: "Declined", Category: "done"}
		}
		approvals[i].CanAnswer = false
		if issue, ok := c.issues[issueKey]; ok {
			issue.Fields.Status = &jira.Status{ID: "10011", Name: request.CurrentStatus.Status}
			issue.Fields.Updated = writeTime
		}
		return nil
	}
	return &jira.NotFoundError{Resource: "approval " + approvalID}
}

// GetSLA returns fixed SLA cycles for any known request.
func (c *Client) GetSLA(_ context.Context, issueKey string) ([]jira.SLA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.requests[issueKey]; !ok {
		return nil, &jira.NotFoundError{Resource: "request " + issueKey}
	}
	return []jira.SLA{
		{ID: "1", Name: "Time to first response", Breached: false, RemainingMin: 120},
		{ID: "2", Name: "Time to resolution", Breached: false, RemainingMin: 2400},
	}, nil
}

// GetOrganizations lists customer organizations in id order.
func (c *Client) GetOrganizations(_ context.Context) ([]jira.Organization, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []jira.Organization
	for _, org := range c.organizations {
		out = append(out, *org)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateOrganization registers a new customer organization.
func (c *Client) CreateOrganization(_ context.Context, name string) (*jira.Organization, error) {
	if name == "" {
		return nil, &jira.ValidationError{Messages: []string{"organization name is required"}}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextOrgID++
	org := &jira.Organization{ID: c.nextOrgID, Name: name}
	c.organizations[org.ID] = org
	out := *org
	return &out, nil
}

// AddUsersToOrganization adds account ids to an organization, ignoring
// duplicates.
func (c *Client) AddUsersToOrganization(_ context.Context, organizationID int, accountIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.organizations[organizationID]; !ok {
		return &jira.NotFoundError{Resource: "organization " + strconv.Itoa(organizationID)}
	}
	for _, id := range accountIDs {
		if !containsString(c.orgUsers[organizationID], id) {
			c.orgUsers[organizationID] = append(c.orgUsers[organizationID], id)
		}
	}
	return nil
}

// RemoveUsersFromOrganization removes account ids from an organization.
// Absent members are ignored.
func (c *Client) RemoveUsersFromOrganization(_ context.Context, organizationID int, accountIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.organizations[organizationID]; !ok {
		return &jira.NotFoundError{Resource: "organization " + strconv.Itoa(organizationID)}
	}
	for _, id := range accountIDs {
		c.orgUsers[organizationID] = removeString(c.orgUsers[organizationID], id)
	}
	return nil
}

// GetOrganizationUsers lists an organization's members.
func (c *Client) GetOrganizationUsers(_ context.Context, organizationID int) ([]jira.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.organizations[organizationID]; !ok {
		return nil, &jira.NotFoundError{Resource: "organization " + strconv.Itoa(organizationID)}
	}
	return c.resolveUsers(c.orgUsers[organizationID]), nil
}

// GetCustomers lists the customers registered with a service desk.
func (c *Client) GetCustomers(_ context.Context, serviceDeskID string) ([]jira.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.serviceDesk(serviceDeskID); err != nil {
		return nil, err
	}
	return c.resolveUsers(c.customers[serviceDeskID]), nil
}

// AddCustomers registers account ids as customers of a service desk,
// ignoring duplicates.
func (c *Client) AddCustomers(_ context.Context, serviceDeskID string, accountIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.serviceDesk(serviceDeskID); err != nil {
		return err
	}
	for _, id := range accountIDs {
		if !containsString(c.customers[serviceDeskID], id) {
			c.customers[serviceDeskID] = append(c.customers[serviceDeskID], id)
		}
	}
	return nil
}

// serviceDesk looks up a desk by id. Callers must hold c.mu.
func (c *Client) serviceDesk(id string) (*jira.ServiceDesk, error) {
	for i := range c.serviceDesks {
		if c.serviceDesks[i].ID == id {
			return &c.serviceDesks[i], nil
		}
	}
	return nil, &jira.NotFoundError{Resource: "service desk " + id}
}

func (c *Client) knownRequestType(serviceDeskID, requestTypeID string) bool {
	for _, rt := range c.requestTypes {
		if rt.ID == requestTypeID && rt.ServiceDesk == serviceDeskID {
			return true
		}
	}
	return false
}

// resolveUsers maps stored account ids to user records. Unknown ids get a
// placeholder, matching AssignIssue.
func (c *Client) resolveUsers(accountIDs []string) []jira.User {
	out := make([]jira.User, 0, len(accountIDs))
	for _, id := range accountIDs {
		out = append(out, *c.userByID(id))
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
