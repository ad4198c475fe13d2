package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetAllBoards lists agile boards, optionally filtered to one project.
func (c *Client) GetAllBoards(ctx context.Context, projectKey string) ([]Board, error) {
	var all []Board
	startAt := 0

	for {
		params := url.Values{"startAt": {strconv.Itoa(startAt)}, "maxResults": {"50"}}
		if projectKey != "" {
			params.Set("projectKeyOrId", projectKey)
		}

		var page BoardPage
		if err := c.getJSON(ctx, agilePrefix+"/board?"+params.Encode(), &page); err != nil {
			return nil, fmt.Errorf("list boards: %w", err)
		}
		all = append(all, page.Values...)
		if page.IsLast || len(page.Values) == 0 {
			break
		}
		startAt += len(page.Values)
	}
	return all, nil
}

// GetBoard fetches a single board.
func (c *Client) GetBoard(ctx context.Context, boardID int) (*Board, error) {
	var b Board
	if err := c.getJSON(ctx, fmt.Sprintf("%s/board/%d", agilePrefix, boardID), &b); err != nil {
		return nil, fmt.Errorf("get board %d: %w", boardID, err)
	}
	return &b, nil
}

// GetBoardSprints lists a board's sprints, optionally filtered by state
// ("future", "active", "closed", or comma-separated combinations).
func (c *Client) GetBoardSprints(ctx context.Context, boardID int, state string) ([]Sprint, error) {
	var all []Sprint
	startAt := 0

	for {
		params := url.Values{"startAt": {strconv.Itoa(startAt)}, "maxResults": {"50"}}
		if state != "" {
			params.Set("state", state)
		}

		var page SprintPage
		if err := c.getJSON(ctx, fmt.Sprintf("%s/board/%d/sprint?%s", agilePrefix, boardID, params.Encode()), &page); err != nil {
			return nil, fmt.Errorf("list sprints for board %d: %w", boardID, err)
		}
		all = append(all, page.Values...)
		if page.IsLast || len(page.Values) == 0 {
			break
		}
		startAt += len(page.Values)
	}
	return all, nil
}

// GetSprint fetches a sprint by id.
func (c *Client) GetSprint(ctx context.Context, sprintID int) (*Sprint, error) {
	var s Sprint
	if err := c.getJSON(ctx, fmt.Sprintf("%s/sprint/%d", agilePrefix, sprintID), &s); err != nil {
		return nil, fmt.Errorf("get sprint %d: %w", sprintID, err)
	}
	return &s, nil
}

// CreateSprint creates a future sprint on the given board.
func (c *Client) CreateSprint(ctx context.Context, boardID int, name, goal string) (*Sprint, error) {
	payload := map[string]any{
		"name":          name,
		"originBoardId": boardID,
	}
	if goal != "" {
		payload["goal"] = goal
	}

	var s Sprint
	if err := c.postJSON(ctx, agilePrefix+"/sprint", payload, &s); err != nil {
		return nil, fmt.Errorf("create sprint %q: %w", name, err)
	}
	return &s, nil
}

// UpdateSprint partially updates a sprint. Setting "state" to "active" or
// "closed" starts or completes the sprint.
func (c *Client) UpdateSprint(ctx context.Context, sprintID int, fields map[string]any) (*Sprint, error) {
	var s Sprint
	if err := c.postJSON(ctx, fmt.Sprintf("%s/sprint/%d", agilePrefix, sprintID), fields, &s); err != nil {
		return nil, fmt.Errorf("update sprint %d: %w", sprintID, err)
	}
	return &s, nil
}

// MoveIssuesToSprint moves issues into a sprint.
func (c *Client) MoveIssuesToSprint(ctx context.Context, sprintID int, keys []string) error {
	payload := map[string]any{"issues": keys}
	if err := c.postJSON(ctx, fmt.Sprintf("%s/sprint/%d/issue", agilePrefix, sprintID), payload, nil); err != nil {
		return fmt.Errorf("move issues to sprint %d: %w", sprintID, err)
	}
	return nil
}

// GetBacklogIssues lists the backlog of a board.
func (c *Client) GetBacklogIssues(ctx context.Context, boardID int) ([]Issue, error) {
	var result SearchResult
	if err := c.getJSON(ctx, fmt.Sprintf("%s/board/%d/backlog?fields=%s", agilePrefix, boardID, url.QueryEscape(fieldsParam(nil))), &result); err != nil {
		return nil, fmt.Errorf("get backlog for board %d: %w", boardID, err)
	}
	return result.Issues, nil
}

// GetEpicIssues lists the issues belonging to an epic.
func (c *Client) GetEpicIssues(ctx context.Context, epicKey string) ([]Issue, error) {
	var result SearchResult
	if err := c.getJSON(ctx, agilePrefix+"/epic/"+url.PathEscape(epicKey)+"/issue", &result); err != nil {
		return nil, fmt.Errorf("get issues for epic %s: %w", epicKey, err)
	}
	return result.Issues, nil
}

// RankIssues reorders issues relative to an anchor issue. Exactly one of
// rankBefore or rankAfter should be set.
func (c *Client) RankIssues(ctx context.Context, keys []string, rankBefore, rankAfter string) error {
	payload := map[string]any{"issues": keys}
	switch {
	case rankBefore != "":
		payload["rankBeforeIssue"] = rankBefore
	case rankAfter != "":
		payload["rankAfterIssue"] = rankAfter
	default:
		return &ValidationError{Messages: []string{"rank requires rankBefore or rankAfter"}}
	}
	if err := c.putJSON(ctx, agilePrefix+"/issue/rank", payload, nil); err != nil {
		return fmt.Errorf("rank issues: %w", err)
	}
	return nil
}
