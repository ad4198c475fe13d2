package jira

import "encoding/json"

// Issue represents a Jira issue from the REST API.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self,omitempty"`
	Fields IssueFields `json:"fields"`
}

// IssueFields contains the fields of a Jira issue.
type IssueFields struct {
	Summary      string           `json:"summary,omitempty"`
	Description  json.RawMessage  `json:"description,omitempty"` // ADF document or plain string
	Status       *Status          `json:"status,omitempty"`
	Priority     *Priority        `json:"priority,omitempty"`
	IssueType    *IssueType       `json:"issuetype,omitempty"`
	Project      *Project         `json:"project,omitempty"`
	Assignee     *User            `json:"assignee,omitempty"`
	Reporter     *User            `json:"reporter,omitempty"`
	Labels       []string         `json:"labels,omitempty"`
	Components   []Component      `json:"components,omitempty"`
	FixVersions  []Version        `json:"fixVersions,omitempty"`
	Created      string           `json:"created,omitempty"`
	Updated      string           `json:"updated,omitempty"`
	Resolution   *Resolution      `json:"resolution,omitempty"`
	IssueLinks   []IssueLink      `json:"issuelinks,omitempty"`
	Parent       *Issue           `json:"parent,omitempty"`
	Attachments  []Attachment     `json:"attachment,omitempty"`
	TimeTracking *TimeTracking    `json:"timetracking,omitempty"`
	Sprint       *Sprint          `json:"sprint,omitempty"`
}

// Status represents a Jira issue status.
type Status struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	StatusCategory *StatusCategory `json:"statusCategory,omitempty"`
}

// StatusCategory groups statuses into To Do / In Progress / Done.
type StatusCategory struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Priority represents a Jira issue priority.
type Priority struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IssueType represents a Jira issue type.
type IssueType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask,omitempty"`
}

// Project represents a Jira project.
type Project struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name,omitempty"`
	ProjectTypeKey string `json:"projectTypeKey,omitempty"`
	Style          string `json:"style,omitempty"`
}

// User represents a Jira user account.
type User struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active,omitempty"`
}

// Resolution represents a Jira resolution.
type Resolution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Component represents a project component.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Version represents a project version.
type Version struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Released bool   `json:"released,omitempty"`
	Archived bool   `json:"archived,omitempty"`
}

// TimeTracking holds estimate and logged-time fields for an issue.
type TimeTracking struct {
	OriginalEstimate         string `json:"originalEstimate,omitempty"`
	RemainingEstimate        string `json:"remainingEstimate,omitempty"`
	TimeSpent                string `json:"timeSpent,omitempty"`
	OriginalEstimateSeconds  int    `json:"originalEstimateSeconds,omitempty"`
	RemainingEstimateSeconds int    `json:"remainingEstimateSeconds,omitempty"`
	TimeSpentSeconds         int    `json:"timeSpentSeconds,omitempty"`
}

// Attachment represents a file attached to an issue.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Size     int    `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Author   *User  `json:"author,omitempty"`
	Created  string `json:"created,omitempty"`
}

// IssueTypeStatuses maps an issue type to its valid statuses, as returned
// by the project statuses endpoint.
type IssueTypeStatuses struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Statuses []Status `json:"statuses"`
}

// Transition represents a workflow transition available on an issue.
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	To   Status `json:"to"`
}

// Comment represents an issue comment. Body is ADF.
type Comment struct {
	ID      string          `json:"id"`
	Body    json.RawMessage `json:"body"`
	Author  *User           `json:"author,omitempty"`
	Created string          `json:"created,omitempty"`
	Updated string          `json:"updated,omitempty"`
}

// Worklog represents a logged unit of work on an issue.
type Worklog struct {
	ID               string          `json:"id"`
	TimeSpent        string          `json:"timeSpent"`
	TimeSpentSeconds int             `json:"timeSpentSeconds"`
	Started          string          `json:"started,omitempty"`
	Comment          json.RawMessage `json:"comment,omitempty"`
	Author           *User           `json:"author,omitempty"`
	Created          string          `json:"created,omitempty"`
	Updated          string          `json:"updated,omitempty"`
}

// IssueLink represents a typed link between two issues.
type IssueLink struct {
	ID           string   `json:"id,omitempty"`
	Type         LinkType `json:"type"`
	InwardIssue  *Issue   `json:"inwardIssue,omitempty"`
	OutwardIssue *Issue   `json:"outwardIssue,omitempty"`
}

// LinkType describes a kind of issue link (Blocks, Relates, Duplicate...).
type LinkType struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Inward  string `json:"inward,omitempty"`
	Outward string `json:"outward,omitempty"`
}

// Board represents an agile board.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // scrum or kanban
}

// Sprint represents an agile sprint.
type Sprint struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	State         string `json:"state"` // future, active, closed
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	CompleteDate  string `json:"completeDate,omitempty"`
	OriginBoardID int    `json:"originBoardId,omitempty"`
	Goal          string `json:"goal,omitempty"`
}

// Field describes a Jira field, including custom fields.
type Field struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Custom bool         `json:"custom"`
	Schema *FieldSchema `json:"schema,omitempty"`
}

// FieldSchema describes the value type of a field.
type FieldSchema struct {
	Type     string `json:"type"`
	CustomID int    `json:"customId,omitempty"`
}

// Filter represents a saved JQL filter.
type Filter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	JQL   string `json:"jql"`
	Owner *User  `json:"owner,omitempty"`
}

// Group represents a Jira user group.
type Group struct {
	GroupID string `json:"groupId,omitempty"`
	Name    string `json:"name"`
}

// SearchResult is one page of a JQL search response.
type SearchResult struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// CommentPage is one page of an issue's comments.
type CommentPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Comments   []Comment `json:"comments"`
}

// WorklogPage is one page of an issue's worklogs.
type WorklogPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Worklogs   []Worklog `json:"worklogs"`
}

// SprintPage is one page of a board's sprints.
type SprintPage struct {
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	IsLast     bool     `json:"isLast"`
	Values     []Sprint `json:"values"`
}

// BoardPage is one page of boards.
type BoardPage struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	IsLast     bool    `json:"isLast"`
	Values     []Board `json:"values"`
}

// CreatedIssue is the minimal response Jira returns on issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// BulkCreateResult is the response of the bulk issue create endpoint.
type BulkCreateResult struct {
	Issues []CreatedIssue    `json:"issues"`
	Errors []BulkCreateError `json:"errors"`
}

// BulkCreateError reports a failed element of a bulk create.
type BulkCreateError struct {
	FailedElementNumber int      `json:"failedElementNumber"`
	Messages            []string `json:"elementErrors,omitempty"`
}

// ServiceDesk represents a JSM service desk.
type ServiceDesk struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	ProjectKey  string `json:"projectKey"`
	ProjectName string `json:"projectName"`
}

// RequestType represents a JSM customer request type.
type RequestType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ServiceDesk string `json:"serviceDeskId,omitempty"`
}

// Request represents a JSM customer request.
type Request struct {
	IssueID       string         `json:"issueId"`
	IssueKey      string         `json:"issueKey"`
	RequestTypeID string         `json:"requestTypeId"`
	ServiceDeskID string         `json:"serviceDeskId"`
	Summary       string         `json:"summary,omitempty"`
	CurrentStatus *RequestStatus `json:"currentStatus,omitempty"`
	Reporter      *User          `json:"reporter,omitempty"`
	CreatedDate   string         `json:"createdDate,omitempty"`
}

// RequestStatus is the visible status of a JSM request.
type RequestStatus struct {
	Status   string `json:"status"`
	Category string `json:"statusCategory,omitempty"`
}

// Queue represents a JSM queue.
type Queue struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	JQL        string `json:"jql,omitempty"`
	IssueCount int    `json:"issueCount,omitempty"`
}

// Approval represents a JSM approval on a request.
type Approval struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	FinalDecision string `json:"finalDecision"` // approved, declined, pending
	CanAnswer     bool   `json:"canAnswerApproval"`
}

// SLA represents a JSM service level agreement cycle on a request.
type SLA struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Breached     bool   `json:"breached"`
	RemainingMin int    `json:"remainingMinutes,omitempty"`
}

// Organization represents a JSM customer organization.
type Organization struct {
	ID   int    `json:"id,string"`
	Name string `json:"name"`
}

// PagedValues is the generic JSM pagination envelope.
type PagedValues[T any] struct {
	Start      int  `json:"start"`
	Limit      int  `json:"limit"`
	Size       int  `json:"size"`
	IsLastPage bool `json:"isLastPage"`
	Values     []T  `json:"values"`
}
