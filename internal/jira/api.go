package jira

import (
	"context"
	"encoding/json"
)

// SearchOptions controls JQL search pagination and field selection.
type SearchOptions struct {
	StartAt    int
	MaxResults int
	Fields     []string
	Expand     string
}

// WorklogInput describes a worklog to add to an issue. Exactly one of
// TimeSpent ("2h 30m") or TimeSpentSeconds must be set. AdjustEstimate is
// one of "", "auto", "leave", "new", "manual".
type WorklogInput struct {
	TimeSpent        string
	TimeSpentSeconds int
	Started          string
	Comment          json.RawMessage
	AdjustEstimate   string
	NewEstimate      string
	ReduceBy         string
}

// API is the method surface shared by the live HTTP client and the
// in-memory mock. CLI commands depend on this interface so the whole
// command tree runs offline under JIRA_MOCK_MODE=true.
type API interface {
	Close() error

	// Issues
	GetIssue(ctx context.Context, key string, fields []string) (*Issue, error)
	CreateIssue(ctx context.Context, fields map[string]any) (*CreatedIssue, error)
	CreateIssuesBulk(ctx context.Context, issues []map[string]any) (*BulkCreateResult, error)
	UpdateIssue(ctx context.Context, key string, fields map[string]any) error
	DeleteIssue(ctx context.Context, key string, deleteSubtasks bool) error
	AssignIssue(ctx context.Context, key, accountID string) error
	SearchIssues(ctx context.Context, jql string, opts *SearchOptions) (*SearchResult, error)
	SearchAll(ctx context.Context, jql string, fields []string) ([]Issue, error)

	// Transitions
	GetTransitions(ctx context.Context, key string) ([]Transition, error)
	TransitionIssue(ctx context.Context, key, transitionID string, fields map[string]any) error

	// Comments
	AddComment(ctx context.Context, key string, body json.RawMessage) (*Comment, error)
	GetComments(ctx context.Context, key string, startAt, maxResults int) (*CommentPage, error)
	GetComment(ctx context.Context, key, commentID string) (*Comment, error)
	UpdateComment(ctx context.Context, key, commentID string, body json.RawMessage) (*Comment, error)
	DeleteComment(ctx context.Context, key, commentID string) error

	// Worklogs
	AddWorklog(ctx context.Context, key string, input WorklogInput) (*Worklog, error)
	GetWorklogs(ctx context.Context, key string, startAt, maxResults int) (*WorklogPage, error)
	DeleteWorklog(ctx context.Context, key, worklogID string) error

	// Users
	GetUser(ctx context.Context, accountID string) (*User, error)
	GetCurrentUser(ctx context.Context) (*User, error)
	SearchUsers(ctx context.Context, query string) ([]User, error)
	FindAssignableUsers(ctx context.Context, project, query string) ([]User, error)

	// Projects and metadata
	GetProject(ctx context.Context, key string) (*Project, error)
	GetProjects(ctx context.Context) ([]Project, error)
	GetProjectStatuses(ctx context.Context, key string) ([]IssueTypeStatuses, error)
	GetProjectComponents(ctx context.Context, key string) ([]Component, error)
	GetProjectVersions(ctx context.Context, key string) ([]Version, error)
	GetFields(ctx context.Context) ([]Field, error)
	GetStatuses(ctx context.Context) ([]Status, error)
	GetIssueTypes(ctx context.Context) ([]IssueType, error)
	GetGroups(ctx context.Context) ([]Group, error)

	// Watchers and notifications
	GetWatchers(ctx context.Context, key string) ([]User, error)
	AddWatcher(ctx context.Context, key, accountID string) error
	RemoveWatcher(ctx context.Context, key, accountID string) error
	NotifyIssue(ctx context.Context, key, subject, body string) error

	// Links
	LinkIssues(ctx context.Context, inwardKey, outwardKey, linkType string) error
	DeleteLink(ctx context.Context, linkID string) error
	GetLinkTypes(ctx context.Context) ([]LinkType, error)

	// Agile
	GetAllBoards(ctx context.Context, projectKey string) ([]Board, error)
	GetBoard(ctx context.Context, boardID int) (*Board, error)
	GetBoardSprints(ctx context.Context, boardID int, state string) ([]Sprint, error)
	GetSprint(ctx context.Context, sprintID int) (*Sprint, error)
	CreateSprint(ctx context.Context, boardID int, name, goal string) (*Sprint, error)
	UpdateSprint(ctx context.Context, sprintID int, fields map[string]any) (*Sprint, error)
	MoveIssuesToSprint(ctx context.Context, sprintID int, keys []string) error
	GetBacklogIssues(ctx context.Context, boardID int) ([]Issue, error)
	GetEpicIssues(ctx context.Context, epicKey string) ([]Issue, error)
	RankIssues(ctx context.Context, keys []string, rankBefore, rankAfter string) error

	// Filters
	GetFilters(ctx context.Context) ([]Filter, error)
	GetFilter(ctx context.Context, filterID string) (*Filter, error)
	CreateFilter(ctx context.Context, name, jql, description string) (*Filter, error)
	DeleteFilter(ctx context.Context, filterID string) error

	// Service management
	GetServiceDesks(ctx context.Context) ([]ServiceDesk, error)
	GetRequestTypes(ctx context.Context, serviceDeskID string) ([]RequestType, error)
	CreateRequest(ctx context.Context, serviceDeskID, requestTypeID, summary, description string) (*Request, error)
	GetRequest(ctx context.Context, issueKey string) (*Request, error)
	GetQueues(ctx context.Context, serviceDeskID string) ([]Queue, error)
	GetQueueIssues(ctx context.Context, serviceDeskID, queueID string) ([]Issue, error)
	GetApprovals(ctx context.Context, issueKey string) ([]Approval, error)
	AnswerApproval(ctx context.Context, issueKey, approvalID, decision string) error
	GetSLA(ctx context.Context, issueKey string) ([]SLA, error)
	GetOrganizations(ctx context.Context) ([]Organization, error)
	CreateOrganization(ctx context.Context, name string) (*Organization, error)
	AddUsersToOrganization(ctx context.Context, organizationID int, accountIDs []string) error
	RemoveUsersFromOrganization(ctx context.Context, organizationID int, accountIDs []string) error
	GetOrganizationUsers(ctx context.Context, organizationID int) ([]User, error)
	GetCustomers(ctx context.Context, serviceDeskID string) ([]User, error)
	AddCustomers(ctx context.Context, serviceDeskID string, accountIDs []string) error
}

// Compile-time check that the HTTP client satisfies the shared surface.
var _ API = (*Client)(nil)
