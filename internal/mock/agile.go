package mock

import (
	"context"
	"sort"
	"strconv"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// GetAllBoards lists the seed boards. The project filter is accepted but
// the mock has a single board either way.
func (c *Client) GetAllBoards(_ context.Context, _ string) ([]jira.Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]jira.Board, len(c.boards))
	copy(out, c.boards)
	return out, nil
}

// GetBoard fetches a board by id.
func (c *Client) GetBoard(_ context.Context, boardID int) (*jira.Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.boards {
		if c.boards[i].ID == boardID {
			b := c.boards[i]
			return &b, nil
		}
	}
	return nil, &jira.NotFoundError{Resource: "board " + strconv.Itoa(boardID)}
}

// GetBoardSprints lists a board's sprints, optionally filtered by state.
func (c *Client) GetBoardSprints(_ context.Context, boardID int, state string) ([]jira.Sprint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []jira.Sprint
	for id := 1; id <= c.nextSprintID; id++ {
		sprint, ok := c.sprints[id]
		if !ok || sprint.OriginBoardID != boardID {
			continue
		}
		if state != "" && sprint.State != state {
			continue
		}
		out = append(out, *sprint)
	}
	return out, nil
}

// GetSprint fetches a sprint by id.
func (c *Client) GetSprint(_ context.Context, sprintID int) (*jira.Sprint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sprint, ok := c.sprints[sprintID]
	if !ok {
		return nil, &jira.NotFoundError{Resource: "sprint " + strconv.Itoa(sprintID)}
	}
	out := *sprint
	return &out, nil
}

// CreateSprint adds a future sprint to a board.
func (c *Client) CreateSprint(_ context.Context, boardID int, name, goal string) (*jira.Sprint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for i := range c.boards {
		if c.boards[i].ID == boardID {
			found = true
			break
		}
	}
	if !found {
		return nil, &jira.NotFoundError{Resource: "board " + strconv.Itoa(boardID)}
	}

	c.nextSprintID++
	sprint := &jira.Sprint{
		ID:            c.nextSprintID,
		Name:          name,
		State:         "future",
		OriginBoardID: boardID,
		Goal:          goal,
	}
	c.sprints[sprint.ID] = sprint
	out := *sprint
	return &out, nil
}

// UpdateSprint merges recognized fields (name, state, goal) into a sprint.
func (c *Client) UpdateSprint(_ context.Context, sprintID int, fields map[string]any) (*jira.Sprint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sprint, ok := c.sprints[sprintID]
	if !ok {
		return nil, &jira.NotFoundError{Resource: "sprint " + strconv.Itoa(sprintID)}
	}
	if name, ok := fields["name"].(string); ok && name != "" {
		sprint.Name = name
	}
	if goal, ok := fields["goal"].(string); ok {
		sprint.Goal = goal
	}
	if state, ok := fields["state"].(string); ok && state != "" {
		switch state {
		case "future", "active", "closed":
			sprint.State = state
			if state == "active" && sprint.StartDate == "" {
				sprint.StartDate = writeTime
			}
			if state == "closed" {
				sprint.CompleteDate = writeTime
			}
		default:
			return nil, &jira.ValidationError{Messages: []string{"invalid sprint state " + state}}
		}
	}
	out := *sprint
	return &out, nil
}

// MoveIssuesToSprint records sprint membership. Every key must exist.
func (c *Client) MoveIssuesToSprint(_ context.Context, sprintID int, keys []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sprints[sprintID]; !ok {
		return &jira.NotFoundError{Resource: "sprint " + strconv.Itoa(sprintID)}
	}
	for _, key := range keys {
		if _, err := c.issue(key); err != nil {
			return err
		}
	}
	for _, key := range keys {
		// An issue belongs to at most one sprint.
		for id := range c.sprintIssues {
			c.sprintIssues[id] = removeString(c.sprintIssues[id], key)
		}
		c.sprintIssues[sprintID] = append(c.sprintIssues[sprintID], key)
	}
	return nil
}

// GetBacklogIssues lists DEMO issues not assigned to any sprint.
func (c *Client) GetBacklogIssues(_ context.Context, boardID int) ([]jira.Issue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inSprint := make(map[string]bool)
	for _, keys := range c.sprintIssues {
		for _, key := range keys {
			inSprint[key] = true
		}
	}

	var out []jira.Issue
	for key, issue := range c.issues {
		if !inSprint[key] {
			out = append(out, *issue)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetEpicIssues returns the issues whose epic link points at the epic.
func (c *Client) GetEpicIssues(_ context.Context, epicKey string) ([]jira.Issue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	epic, err := c.issue(epicKey)
	if err != nil {
		return nil, err
	}
	if epic.Fields.IssueType == nil || epic.Fields.IssueType.Name != "Epic" {
		return nil, &jira.ValidationError{Messages: []string{epicKey + " is not an epic"}}
	}

	var out []jira.Issue
	for key, linked := range c.epicLinks {
		if linked != epicKey {
			continue
		}
		if issue, ok := c.issues[key]; ok {
			out = append(out, *issue)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RankIssues validates its inputs; the mock keeps no rank order.
func (c *Client) RankIssues(_ context.Context, keys []string, rankBefore, rankAfter string) error {
	if rankBefore == "" && rankAfter == "" {
		return &jira.ValidationError{Messages: []string{"rank requires rankBefore or rankAfter"}}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		if _, err := c.issue(key); err != nil {
			return err
		}
	}
	anchor := rankBefore
	if anchor == "" {
		anchor = rankAfter
	}
	_, err := c.issue(anchor)
	return err
}
