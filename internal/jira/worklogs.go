package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AddWorklog logs work on an issue. The estimate adjustment mode in input
// maps to Jira's adjustEstimate query parameter.
func (c *Client) AddWorklog(ctx context.Context, key string, input WorklogInput) (*Worklog, error) {
	payload := map[string]any{}
	switch {
	case input.TimeSpent != "":
		payload["timeSpent"] = input.TimeSpent
	case input.TimeSpentSeconds > 0:
		payload["timeSpentSeconds"] = input.TimeSpentSeconds
	default:
		return nil, &ValidationError{Messages: []string{"worklog requires timeSpent or timeSpentSeconds"}}
	}
	if input.Started != "" {
		payload["started"] = input.Started
	}
	if len(input.Comment) > 0 {
		payload["comment"] = input.Comment
	}

	params := url.Values{}
	if input.AdjustEstimate != "" {
		params.Set("adjustEstimate", input.AdjustEstimate)
		switch input.AdjustEstimate {
		case "new":
			params.Set("newEstimate", input.NewEstimate)
		case "manual":
			params.Set("reduceBy", input.ReduceBy)
		}
	}

	path := apiPrefix + "/issue/" + url.PathEscape(key) + "/worklog"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var wl Worklog
	if err := c.postJSON(ctx, path, payload, &wl); err != nil {
		return nil, fmt.Errorf("add worklog to %s: %w", key, err)
	}
	return &wl, nil
}

// GetWorklogs returns one page of an issue's worklogs.
func (c *Client) GetWorklogs(ctx context.Context, key string, startAt, maxResults int) (*WorklogPage, error) {
	if maxResults <= 0 {
		maxResults = 1000
	}
	params := url.Values{
		"startAt":    {strconv.Itoa(startAt)},
		"maxResults": {strconv.Itoa(maxResults)},
	}

	var page WorklogPage
	if err := c.getJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/worklog?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("get worklogs for %s: %w", key, err)
	}
	return &page, nil
}

// DeleteWorklog removes a worklog entry from an issue.
func (c *Client) DeleteWorklog(ctx context.Context, key, worklogID string) error {
	path := apiPrefix + "/issue/" + url.PathEscape(key) + "/worklog/" + url.PathEscape(worklogID)
	if err := c.deleteReq(ctx, path); err != nil {
		return fmt.Errorf("delete worklog %s on %s: %w", worklogID, key, err)
	}
	return nil
}
