package jira

import (
	"context"
	"fmt"
	"net/url"
)

// GetUser fetches a user by account id.
func (c *Client) GetUser(ctx context.Context, accountID string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, apiPrefix+"/user?accountId="+url.QueryEscape(accountID), &user); err != nil {
		return nil, fmt.Errorf("get user %s: %w", accountID, err)
	}
	return &user, nil
}

// GetCurrentUser returns the authenticated user.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, apiPrefix+"/myself", &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}

// SearchUsers finds users matching a display name or email fragment.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, apiPrefix+"/user/search?query="+url.QueryEscape(query), &users); err != nil {
		return nil, fmt.Errorf("search users %q: %w", query, err)
	}
	return users, nil
}

// FindAssignableUsers lists users who can be assigned issues in a project.
func (c *Client) FindAssignableUsers(ctx context.Context, project, query string) ([]User, error) {
	params := url.Values{"project": {project}}
	if query != "" {
		params.Set("query", query)
	}

	var users []User
	if err := c.getJSON(ctx, apiPrefix+"/user/assignable/search?"+params.Encode(), &users); err != nil {
		return nil, fmt.Errorf("find assignable users for %s: %w", project, err)
	}
	return users, nil
}
