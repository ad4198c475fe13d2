package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchIssues runs a JQL query and returns one page of results.
func (c *Client) SearchIssues(ctx context.Context, jql string, opts *SearchOptions) (*SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	params := url.Values{
		"jql":        {jql},
		"fields":     {fieldsParam(opts.Fields)},
		"startAt":    {strconv.Itoa(opts.StartAt)},
		"maxResults": {strconv.Itoa(maxResults)},
	}
	if opts.Expand != "" {
		params.Set("expand", opts.Expand)
	}

	var result SearchResult
	if err := c.getJSON(ctx, apiPrefix+"/search?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}
	return &result, nil
}

// SearchAll runs a JQL query and returns every matching issue, walking
// pagination until the total is reached.
func (c *Client) SearchAll(ctx context.Context, jql string, fields []string) ([]Issue, error) {
	var all []Issue
	startAt := 0

	for {
		page, err := c.SearchIssues(ctx, jql, &SearchOptions{
			StartAt:    startAt,
			MaxResults: 100,
			Fields:     fields,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Issues...)

		if len(page.Issues) == 0 || startAt+len(page.Issues) >= page.Total {
			break
		}
		startAt += len(page.Issues)
	}
	return all, nil
}

// GetFilters lists the caller's saved filters (favourites plus owned).
func (c *Client) GetFilters(ctx context.Context) ([]Filter, error) {
	var page struct {
		Values []Filter `json:"values"`
	}
	if err := c.getJSON(ctx, apiPrefix+"/filter/search?expand=jql,owner", &page); err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	return page.Values, nil
}

// GetFilter fetches a saved filter by id.
func (c *Client) GetFilter(ctx context.Context, filterID string) (*Filter, error) {
	var f Filter
	if err := c.getJSON(ctx, apiPrefix+"/filter/"+url.PathEscape(filterID), &f); err != nil {
		return nil, fmt.Errorf("get filter %s: %w", filterID, err)
	}
	return &f, nil
}

// CreateFilter saves a named JQL filter.
func (c *Client) CreateFilter(ctx context.Context, name, jql, description string) (*Filter, error) {
	payload := map[string]any{
		"name": name,
		"jql":  jql,
	}
	if description != "" {
		payload["description"] = description
	}

	var f Filter
	if err := c.postJSON(ctx, apiPrefix+"/filter", payload, &f); err != nil {
		return nil, fmt.Errorf("create filter %q: %w", name, err)
	}
	return &f, nil
}

// DeleteFilter removes a saved filter.
func (c *Client) DeleteFilter(ctx context.Context, filterID string) error {
	if err := c.deleteReq(ctx, apiPrefix+"/filter/"+url.PathEscape(filterID)); err != nil {
		return fmt.Errorf("delete filter %s: %w", filterID, err)
	}
	return nil
}
