package jira

import (
	"context"
	"fmt"
	"net/url"
)

// GetProject fetches a project by key or id.
func (c *Client) GetProject(ctx context.Context, key string) (*Project, error) {
	var p Project
	if err := c.getJSON(ctx, apiPrefix+"/project/"+url.PathEscape(key), &p); err != nil {
		return nil, fmt.Errorf("get project %s: %w", key, err)
	}
	return &p, nil
}

// GetProjects lists the projects visible to the caller.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var page struct {
		Values []Project `json:"values"`
	}
	if err := c.getJSON(ctx, apiPrefix+"/project/search", &page); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return page.Values, nil
}

// GetProjectStatuses returns the statuses valid per issue type in a project.
func (c *Client) GetProjectStatuses(ctx context.Context, key string) ([]IssueTypeStatuses, error) {
	var statuses []IssueTypeStatuses
	if err := c.getJSON(ctx, apiPrefix+"/project/"+url.PathEscape(key)+"/statuses", &statuses); err != nil {
		return nil, fmt.Errorf("get statuses for project %s: %w", key, err)
	}
	return statuses, nil
}

// GetProjectComponents lists a project's components.
func (c *Client) GetProjectComponents(ctx context.Context, key string) ([]Component, error) {
	var components []Component
	if err := c.getJSON(ctx, apiPrefix+"/project/"+url.PathEscape(key)+"/components", &components); err != nil {
		return nil, fmt.Errorf("get components for project %s: %w", key, err)
	}
	return components, nil
}

// GetProjectVersions lists a project's versions.
func (c *Client) GetProjectVersions(ctx context.Context, key string) ([]Version, error) {
	var versions []Version
	if err := c.getJSON(ctx, apiPrefix+"/project/"+url.PathEscape(key)+"/versions", &versions); err != nil {
		return nil, fmt.Errorf("get versions for project %s: %w", key, err)
	}
	return versions, nil
}

// GetFields lists all fields, system and custom.
func (c *Client) GetFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.getJSON(ctx, apiPrefix+"/field", &fields); err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fields, nil
}

// GetStatuses lists every status defined on the site.
func (c *Client) GetStatuses(ctx context.Context) ([]Status, error) {
	var statuses []Status
	if err := c.getJSON(ctx, apiPrefix+"/status", &statuses); err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return statuses, nil
}

// GetIssueTypes lists every issue type defined on the site.
func (c *Client) GetIssueTypes(ctx context.Context) ([]IssueType, error) {
	var types []IssueType
	if err := c.getJSON(ctx, apiPrefix+"/issuetype", &types); err != nil {
		return nil, fmt.Errorf("list issue types: %w", err)
	}
	return types, nil
}

// GetGroups lists user groups.
func (c *Client) GetGroups(ctx context.Context) ([]Group, error) {
	var page struct {
		Values []Group `json:"values"`
	}
	if err := c.getJSON(ctx, apiPrefix+"/group/bulk", &page); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return page.Values, nil
}
