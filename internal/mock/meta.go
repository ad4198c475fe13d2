package mock

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// GetUser fetches a seed user by account id.
func (c *Client) GetUser(_ context.Context, accountID string) (*jira.User, error) {
	if u, ok := seedUsers[accountID]; ok {
		return &u, nil
	}
	return nil, &jira.NotFoundError{Resource: "user " + accountID}
}

// GetCurrentUser returns the mock's authenticated user.
func (c *Client) GetCurrentUser(_ context.Context) (*jira.User, error) {
	u := seedUsers[currentUserID]
	return &u, nil
}

// SearchUsers matches on display name or email substring. An empty query
// returns everyone.
func (c *Client) SearchUsers(_ context.Context, query string) ([]jira.User, error) {
	q := strings.ToLower(query)
	var out []jira.User
	for _, u := range allSeedUsers() {
		if q == "" ||
			strings.Contains(strings.ToLower(u.DisplayName), q) ||
			strings.Contains(strings.ToLower(u.EmailAddress), q) {
			out = append(out, u)
		}
	}
	return out, nil
}

// FindAssignableUsers returns every seed user; the DEMO project has no
// assignment restrictions.
func (c *Client) FindAssignableUsers(_ context.Context, _, _ string) ([]jira.User, error) {
	return allSeedUsers(), nil
}

func allSeedUsers() []jira.User {
	out := make([]jira.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out
}

// GetProject fetches a seed project by key.
func (c *Client) GetProject(_ context.Context, key string) (*jira.Project, error) {
	return findSeedProject(key)
}

func findSeedProject(key string) (*jira.Project, error) {
	for i := range seedProjects {
		if seedProjects[i].Key == key {
			p := seedProjects[i]
			return &p, nil
		}
	}
	return nil, &jira.NotFoundError{Resource: "project " + key}
}

// GetProjects lists the seed projects.
func (c *Client) GetProjects(_ context.Context) ([]jira.Project, error) {
	out := make([]jira.Project, len(seedProjects))
	copy(out, seedProjects)
	return out, nil
}

// GetProjectStatuses returns the static To Do / In Progress / Done workflow
// for every issue type.
func (c *Client) GetProjectStatuses(_ context.Context, key string) ([]jira.IssueTypeStatuses, error) {
	if _, err := findSeedProject(key); err != nil {
		return nil, err
	}
	return []jira.IssueTypeStatuses{
		{ID: "10000", Name: "To Do", Statuses: []jira.Status{{ID: "10000", Name: "To Do"}}},
		{ID: "10001", Name: "In Progress", Statuses: []jira.Status{{ID: "10001", Name: "In Progress"}}},
		{ID: "10002", Name: "Done", Statuses: []jira.Status{{ID: "10002", Name: "Done"}}},
	}, nil
}

// GetProjectComponents returns the DEMO project's components.
func (c *Client) GetProjectComponents(_ context.Context, key string) ([]jira.Component, error) {
	if _, err := findSeedProject(key); err != nil {
		return nil, err
	}
	return []jira.Component{
		{ID: "10100", Name: "Backend"},
		{ID: "10101", Name: "API"},
	}, nil
}

// GetProjectVersions returns the DEMO project's versions.
func (c *Client) GetProjectVersions(_ context.Context, key string) ([]jira.Version, error) {
	if _, err := findSeedProject(key); err != nil {
		return nil, err
	}
	return []jira.Version{
		{ID: "10200", Name: "1.0", Released: true},
		{ID: "10201", Name: "1.1", Released: false},
	}, nil
}

// GetFields returns the static field table, including the common agile
// custom fields.
func (c *Client) GetFields(_ context.Context) ([]jira.Field, error) {
	out := make([]jira.Field, len(seedFields))
	copy(out, seedFields)
	return out, nil
}

// GetStatuses lists the three workflow statuses.
func (c *Client) GetStatuses(_ context.Context) ([]jira.Status, error) {
	return []jira.Status{
		{ID: "10000", Name: "To Do"},
		{ID: "10001", Name: "In Progress"},
		{ID: "10002", Name: "Done"},
	}, nil
}

// GetIssueTypes lists the seeded issue types.
func (c *Client) GetIssueTypes(_ context.Context) ([]jira.IssueType, error) {
	return []jira.IssueType{
		{ID: "10000", Name: "Epic"},
		{ID: "10001", Name: "Story"},
		{ID: "10002", Name: "Bug"},
		{ID: "10003", Name: "Task"},
	}, nil
}

// GetGroups lists canned user groups.
func (c *Client) GetGroups(_ context.Context) ([]jira.Group, error) {
	return []jira.Group{
		{GroupID: "g1", Name: "jira-software-users"},
		{GroupID: "g2", Name: "jira-administrators"},
	}, nil
}

// GetFilters lists saved filters in id order.
func (c *Client) GetFilters(_ context.Context) ([]jira.Filter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []jira.Filter
	for id := 1; id <= c.nextFilterID; id++ {
		if f, ok := c.filters[strconv.Itoa(id)]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

// GetFilter fetches a saved filter.
func (c *Client) GetFilter(_ context.Context, filterID string) (*jira.Filter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.filters[filterID]
	if !ok {
		return nil, &jira.NotFoundError{Resource: "filter " + filterID}
	}
	out := *f
	return &out, nil
}

// CreateFilter saves a filter owned by the current user.
func (c *Client) CreateFilter(_ context.Context, name, jql, _ string) (*jira.Filter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextFilterID++
	owner := seedUsers[currentUserID]
	f := &jira.Filter{
		ID:    strconv.Itoa(c.nextFilterID),
		Name:  name,
		JQL:   jql,
		Owner: &owner,
	}
	c.filters[f.ID] = f
	out := *f
	return &out, nil
}

// DeleteFilter removes a saved filter.
func (c *Client) DeleteFilter(_ context.Context, filterID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.filters[filterID]; !ok {
		return &jira.NotFoundError{Resource: "filter " + filterID}
	}
	delete(c.filters, filterID)
	return nil
}
