// Package mock is an in-memory stand-in for the live Jira client. It
// implements the same method surface (jira.API) over map-backed stores so
// the CLI and its tests run without a server. Set JIRA_MOCK_MODE=true to
// select it.
//
// The simulation is deliberately small: a fixed DEMO project with seeded
// issues, a static three-step workflow, and substring-based JQL filtering.
// State mutates synchronously; IDs and timestamps are deterministic.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// Enabled reports whether mock mode is requested (JIRA_MOCK_MODE=true).
func Enabled() bool {
	return strings.EqualFold(os.Getenv("JIRA_MOCK_MODE"), "true")
}

// Client is an in-memory Jira simulation. All state lives in maps keyed by
// issue key or numeric id. A mutex guards the maps so parallel tests are
// safe, though the simulation makes no other concurrency promises.
type Client struct {
	BaseURL string

	mu           sync.Mutex
	nextIssueNum int
	issues       map[string]*jira.Issue
	comments     map[string][]jira.Comment
	worklogs     map[string][]jira.Worklog
	watchers     map[string][]string // issue key -> account ids
	links        map[string]*jira.IssueLink
	nextLinkID   int
	epicLinks    map[string]string // issue key -> epic key

	boards       []jira.Board
	sprints      map[int]*jira.Sprint
	sprintIssues map[int][]string // sprint id -> issue keys
	nextSprintID int

	filters      map[string]*jira.Filter
	nextFilterID int

	serviceDesks  []jira.ServiceDesk
	requestTypes  []jira.RequestType
	queues        []jira.Queue
	requests      map[string]*jira.Request
	approvals     map[string][]jira.Approval
	organizations map[int]*jira.Organization
	orgUsers      map[int][]string
	customers     map[string][]string // service desk id -> account ids
	nextOrgID     int
}

var _ jira.API = (*Client)(nil)

// NewClient creates a mock client seeded with the DEMO project fixtures.
func NewClient() *Client {
	baseURL := "https://mock.atlassian.net"
	return &Client{
		BaseURL:       baseURL,
		nextIssueNum:  100,
		issues:        seedIssues(baseURL),
		comments:      make(map[string][]jira.Comment),
		worklogs:      make(map[string][]jira.Worklog),
		watchers:      make(map[string][]string),
		links:         make(map[string]*jira.IssueLink),
		epicLinks:     make(map[string]string),
		boards:        seedBoards(),
		sprints:       seedSprints(),
		sprintIssues:  make(map[int][]string),
		nextSprintID:  2,
		filters:       make(map[string]*jira.Filter),
		serviceDesks:  seedServiceDesks(),
		requestTypes:  seedRequestTypes(),
		queues:        seedQueues(),
		requests:      make(map[string]*jira.Request),
		approvals:     make(map[string][]jira.Approval),
		organizations: make(map[int]*jira.Organization),
		orgUsers:      make(map[int][]string),
		customers:     make(map[string][]string),
	}
}

// Close is a no-op for the mock.
func (c *Client) Close() error { return nil }

// issue returns the stored issue or a NotFoundError. Callers must hold c.mu.
func (c *Client) issue(key string) (*jira.Issue, error) {
	issue, ok := c.issues[key]
	if !ok {
		return nil, &jira.NotFoundError{Resource: "issue " + key}
	}
	return issue, nil
}

// GetIssue returns an issue by key, with link, watcher, and sprint state
// materialized into its fields.
func (c *Client) GetIssue(_ context.Context, key string, _ []string) (*jira.Issue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	issue, err := c.issue(key)
	if err != nil {
		return nil, err
	}
	out := *issue
	out.Fields.IssueLinks = c.linksFor(key)
	return &out, nil
}

// CreateIssue creates a new issue from a field map shaped like the REST
// payload. The issue counter increments before use, so the first created
// issue in a fresh mock is DEMO-101.
func (c *Client) CreateIssue(_ context.Context, fields map[string]any) (*jira.CreatedIssue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	created := c.createIssueLocked(fields)
	return created, nil
}

func (c *Client) createIssueLocked(fields map[string]any) *jira.CreatedIssue {
	c.nextIssueNum++
	projectKey := nestedString(fields, "project", "key")
	if projectKey == "" {
		projectKey = "DEMO"
	}
	key := fmt.Sprintf("%s-%d", projectKey, c.nextIssueNum)
	id := strconv.Itoa(10000 + c.nextIssueNum)

	typeName := nestedString(fields, "issuetype", "name")
	if typeName == "" {
		typeName = "Task"
	}
	priorityName := nestedString(fields, "priority", "name")
	if priorityName == "" {
		priorityName = "Medium"
	}

	reporter := seedUsers[currentUserID]
	project := c.findProject(projectKey)

	issue := &jira.Issue{
		ID:   id,
		Key:  key,
		Self: fmt.Sprintf("%s/rest/api/3/issue/%s", c.BaseURL, id),
		Fields: jira.IssueFields{
			Summary:     stringField(fields, "summary", "New Issue"),
			Description: rawField(fields, "description"),
			IssueType:   &jira.IssueType{ID: "10000", Name: typeName},
			Status:      &jira.Status{ID: "10000", Name: "To Do"},
			Priority:    &jira.Priority{ID: "3", Name: priorityName},
			Reporter:    &reporter,
			Project:     project,
			Labels:      stringsField(fields, "labels"),
			Created:     writeTime,
			Updated:     writeTime,
		},
	}
	if accountID := nestedString(fields, "assignee", "accountId"); accountID != "" {
		issue.Fields.Assignee = c.userByID(accountID)
	}
	c.issues[key] = issue

	return &jira.CreatedIssue{ID: id, Key: key, Self: issue.Self}
}

// CreateIssuesBulk creates each element independently; the mock has no
// per-element failure modes beyond a missing fields map.
func (c *Client) CreateIssuesBulk(_ context.Context, issues []map[string]any) (*jira.BulkCreateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := &jira.BulkCreateResult{}
	for i, fields := range issues {
		if fields == nil {
			result.Errors = append(result.Errors, jira.BulkCreateError{
				FailedElementNumber: i,
				Messages:            []string{"missing fields"},
			})
			continue
		}
		result.Issues = append(result.Issues, *c.createIssueLocked(fields))
	}
	return result, nil
}

// UpdateIssue merges the given fields into a stored issue.
func (c *Client) UpdateIssue(_ context.Context, key string, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	issue, err := c.issue(key)
	if err != nil {
		return err
	}

	for name, value := range fields {
		switch name {
		case "summary":
			if s, ok := value.(string); ok {
				issue.Fields.Summary = s
			}
		case "description":
			issue.Fields.Description = toRaw(value)
		case "labels":
			issue.Fields.Labels = toStrings(value)
		case "priority":
			if pname := nestedString(fields, "priority", "name"); pname != "" {
				issue.Fields.Priority = &jira.Priority{ID: priorityID(pname), Name: pname}
			}
		case "assignee":
			if accountID := nestedString(fields, "assignee", "accountId"); accountID != "" {
				issue.Fields.Assignee = c.userByID(accountID)
			} else if value == nil {
				issue.Fields.Assignee = nil
			}
		case "customfield_10014": // epic link
			if epicKey, ok := value.(string); ok && epicKey != "" {
				c.epicLinks[key] = epicKey
			} else if value == nil {
				delete(c.epicLinks, key)
			}
		case "parent":
			if epicKey := nestedString(fields, "parent", "key"); epicKey != "" {
				c.epicLinks[key] = epicKey
			}
		}
	}
	issue.Fields.Updated = writeTime
	return nil
}

// DeleteIssue removes an issue and all records attached to it.
func (c *Client) DeleteIssue(_ context.Context, key string, _ bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return err
	}
	delete(c.issues, key)
	delete(c.comments, key)
	delete(c.worklogs, key)
	delete(c.watchers, key)
	delete(c.requests, key)
	delete(c.epicLinks, key)
	for id, link := range c.links {
		if linkTouches(link, key) {
			delete(c.links, id)
		}
	}
	for sprintID, keys := range c.sprintIssues {
		c.sprintIssues[sprintID] = removeString(keys, key)
	}
	return nil
}

// AssignIssue sets or clears the assignee. Unknown account ids are accepted
// and stored as placeholder users, mirroring the permissive real API.
func (c *Client) AssignIssue(_ context.Context, key, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	issue, err := c.issue(key)
	if err != nil {
		return err
	}
	if accountID == "" {
		issue.Fields.Assignee = nil
	} else {
		issue.Fields.Assignee = c.userByID(accountID)
	}
	issue.Fields.Updated = writeTime
	return nil
}

// GetTransitions returns the static workflow table for any existing issue.
func (c *Client) GetTransitions(_ context.Context, key string) ([]jira.Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}
	out := make([]jira.Transition, len(seedTransitions))
	copy(out, seedTransitions)
	return out, nil
}

// TransitionIssue applies a transition by scanning the static table. An id
// that isn't in the table leaves the issue untouched, matching the lenient
// behavior tests rely on.
func (c *Client) TransitionIssue(_ context.Context, key, transitionID string, _ map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	issue, err := c.issue(key)
	if err != nil {
		return err
	}
	for _, t := range seedTransitions {
		if t.ID == transitionID {
			to := t.To
			issue.Fields.Status = &to
			issue.Fields.Updated = writeTime
			break
		}
	}
	return nil
}

// NotifyIssue validates the issue exists; the mock has nowhere to deliver to.
func (c *Client) NotifyIssue(_ context.Context, key, _, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.issue(key)
	return err
}

func (c *Client) findProject(key string) *jira.Project {
	for i := range seedProjects {
		if seedProjects[i].Key == key {
			p := seedProjects[i]
			return &p
		}
	}
	return &jira.Project{ID: "10000", Key: key, Name: "Demo Project"}
}

// userByID resolves a seed user, or fabricates a placeholder for unknown ids.
func (c *Client) userByID(accountID string) *jira.User {
	if u, ok := seedUsers[accountID]; ok {
		return &u
	}
	return &jira.User{AccountID: accountID, DisplayName: "Unknown User"}
}

func linkTouches(link *jira.IssueLink, key string) bool {
	return (link.InwardIssue != nil && link.InwardIssue.Key == key) ||
		(link.OutwardIssue != nil && link.OutwardIssue.Key == key)
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func priorityID(name string) string {
	switch name {
	case "Highest":
		return "1"
	case "High":
		return "2"
	case "Medium":
		return "3"
	case "Low":
		return "4"
	case "Lowest":
		return "5"
	}
	return "3"
}

// Field-map coercion helpers. CLI commands build payloads as the REST API
// expects them (nested maps), so the mock unpacks the same shapes.

func stringField(fields map[string]any, name, fallback string) string {
	if s, ok := fields[name].(string); ok && s != "" {
		return s
	}
	return fallback
}

func nestedString(fields map[string]any, name, sub string) string {
	m, ok := fields[name].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[sub].(string)
	return s
}

func stringsField(fields map[string]any, name string) []string {
	return toStrings(fields[name])
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func rawField(fields map[string]any, name string) json.RawMessage {
	return toRaw(fields[name])
}

func toRaw(value any) json.RawMessage {
	switch v := value.(type) {
	case nil:
		return nil
	case json.RawMessage:
		return v
	case []byte:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return data
	}
}
