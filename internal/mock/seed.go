package mock

import (
	"fmt"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// Fixed timestamps keep mock output deterministic across runs.
const (
	seedTime  = "2025-01-01T10:00:00.000+0000"
	writeTime = "2025-01-08T10:00:00.000+0000"
)

// Seed user accounts.
var seedUsers = map[string]jira.User{
	"abc123": {
		AccountID:    "abc123",
		DisplayName:  "Jason Krueger",
		EmailAddress: "jasonkrue@gmail.com",
		Active:       true,
	},
	"def456": {
		AccountID:    "def456",
		DisplayName:  "Jane Manager",
		EmailAddress: "jane@example.com",
		Active:       true,
	},
}

// currentUserID is the account the mock treats as authenticated.
const currentUserID = "abc123"

var seedProjects = []jira.Project{
	{ID: "10000", Key: "DEMO", Name: "Demo Project", ProjectTypeKey: "software", Style: "classic"},
	{ID: "10001", Key: "DEMOSD", Name: "Demo Service Desk", ProjectTypeKey: "service_desk", Style: "classic"},
}

// Static workflow transition table. TransitionIssue scans this linearly.
var seedTransitions = []jira.Transition{
	{ID: "11", Name: "To Do", To: jira.Status{ID: "10000", Name: "To Do"}},
	{ID: "21", Name: "In Progress", To: jira.Status{ID: "10001", Name: "In Progress"}},
	{ID: "31", Name: "Done", To: jira.Status{ID: "10002", Name: "Done"}},
}

var seedLinkTypes = []jira.LinkType{
	{ID: "10000", Name: "Blocks", Inward: "is blocked by", Outward: "blocks"},
	{ID: "10001", Name: "Cloners", Inward: "is cloned by", Outward: "clones"},
	{ID: "10002", Name: "Duplicate", Inward: "is duplicated by", Outward: "duplicates"},
	{ID: "10003", Name: "Relates", Inward: "relates to", Outward: "relates to"},
}

var seedFields = []jira.Field{
	{ID: "summary", Name: "Summary"},
	{ID: "description", Name: "Description"},
	{ID: "status", Name: "Status"},
	{ID: "priority", Name: "Priority"},
	{ID: "assignee", Name: "Assignee"},
	{ID: "labels", Name: "Labels"},
	{ID: "customfield_10011", Name: "Epic Name", Custom: true, Schema: &jira.FieldSchema{Type: "string", CustomID: 10011}},
	{ID: "customfield_10014", Name: "Epic Link", Custom: true, Schema: &jira.FieldSchema{Type: "any", CustomID: 10014}},
	{ID: "customfield_10016", Name: "Story Points", Custom: true, Schema: &jira.FieldSchema{Type: "number", CustomID: 10016}},
	{ID: "customfield_10020", Name: "Sprint", Custom: true, Schema: &jira.FieldSchema{Type: "array", CustomID: 10020}},
}

type seedSpec struct {
	key       string
	id        string
	summary   string
	desc      string // plain text, converted to ADF when non-empty
	issueType jira.IssueType
	priority  jira.Priority
	assignee  string // seed user account id
	reporter  string
}

var seedIssueSpecs = []seedSpec{
	{
		key: "DEMO-84", id: "10084",
		summary:   "Product Launch",
		desc:      "Epic for product launch activities",
		issueType: jira.IssueType{ID: "10000", Name: "Epic"},
		priority:  jira.Priority{ID: "2", Name: "High"},
		assignee:  "abc123", reporter: "abc123",
	},
	{
		key: "DEMO-85", id: "10085",
		summary:   "User Authentication",
		issueType: jira.IssueType{ID: "10001", Name: "Story"},
		priority:  jira.Priority{ID: "2", Name: "High"},
		assignee:  "abc123", reporter: "abc123",
	},
	{
		key: "DEMO-86", id: "10086",
		summary:   "Login fails on mobile Safari",
		issueType: jira.IssueType{ID: "10002", Name: "Bug"},
		priority:  jira.Priority{ID: "2", Name: "High"},
		assignee:  "def456", reporter: "abc123",
	},
	{
		key: "DEMO-87", id: "10087",
		summary:   "Update API documentation",
		issueType: jira.IssueType{ID: "10003", Name: "Task"},
		priority:  jira.Priority{ID: "3", Name: "Medium"},
		assignee:  "def456", reporter: "abc123",
	},
	{
		key: "DEMO-91", id: "10091",
		summary:   "Search pagination bug",
		issueType: jira.IssueType{ID: "10002", Name: "Bug"},
		priority:  jira.Priority{ID: "3", Name: "Medium"},
		assignee:  "abc123", reporter: "def456",
	},
}

// seedIssues builds the initial issue store for the DEMO project.
func seedIssues(baseURL string) map[string]*jira.Issue {
	issues := make(map[string]*jira.Issue, len(seedIssueSpecs))
	demo := seedProjects[0]

	for _, spec := range seedIssueSpecs {
		assignee := seedUsers[spec.assignee]
		reporter := seedUsers[spec.reporter]
		issue := &jira.Issue{
			ID:   spec.id,
			Key:  spec.key,
			Self: fmt.Sprintf("%s/rest/api/3/issue/%s", baseURL, spec.id),
			Fields: jira.IssueFields{
				Summary:   spec.summary,
				IssueType: &spec.issueType,
				Status:    &jira.Status{ID: "10000", Name: "To Do"},
				Priority:  &spec.priority,
				Assignee:  &assignee,
				Reporter:  &reporter,
				Project:   &demo,
				Labels:    []string{"demo"},
				Created:   seedTime,
				Updated:   seedTime,
			},
		}
		if spec.desc != "" {
			issue.Fields.Description = jira.TextToADF(spec.desc)
		}
		issues[spec.key] = issue
	}
	return issues
}

func seedBoards() []jira.Board {
	return []jira.Board{{ID: 1, Name: "DEMO board", Type: "scrum"}}
}

func seedSprints() map[int]*jira.Sprint {
	return map[int]*jira.Sprint{
		1: {ID: 1, Name: "Sprint 1", State: "active", OriginBoardID: 1, StartDate: seedTime, Goal: "Ship the login flow"},
		2: {ID: 2, Name: "Sprint 2", State: "future", OriginBoardID: 1},
	}
}

func seedServiceDesks() []jira.ServiceDesk {
	return []jira.ServiceDesk{
		{ID: "1", ProjectID: "10001", ProjectKey: "DEMOSD", ProjectName: "Demo Service Desk"},
	}
}

func seedRequestTypes() []jira.RequestType {
	return []jira.RequestType{
		{ID: "10", Name: "IT help", Description: "Get IT assistance", ServiceDesk: "1"},
		{ID: "11", Name: "Bug report", Description: "Report a problem", ServiceDesk: "1"},
	}
}

func seedQueues() []jira.Queue {
	return []jira.Queue{
		{ID: "1", Name: "Open requests", JQL: `project = DEMOSD AND status != Done ORDER BY created DESC`},
		{ID: "2", Name: "Waiting for approval", JQL: `project = DEMOSD AND status = "Waiting for approval"`},
	}
}
