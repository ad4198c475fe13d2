package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// AddComment attaches a comment to an issue. body must be an ADF document
// (see TextToADF).
func (c *Client) AddComment(ctx context.Context, key string, body json.RawMessage) (*Comment, error) {
	payload := map[string]any{"body": body}

	var comment Comment
	if err := c.postJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/comment", payload, &comment); err != nil {
		return nil, fmt.Errorf("add comment to %s: %w", key, err)
	}
	return &comment, nil
}

// GetComments returns one page of an issue's comments.
func (c *Client) GetComments(ctx context.Context, key string, startAt, maxResults int) (*CommentPage, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	params := url.Values{
		"startAt":    {strconv.Itoa(startAt)},
		"maxResults": {strconv.Itoa(maxResults)},
	}

	var page CommentPage
	if err := c.getJSON(ctx, apiPrefix+"/issue/"+url.PathEscape(key)+"/comment?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("get comments for %s: %w", key, err)
	}
	return &page, nil
}

// GetComment fetches a single comment by id.
func (c *Client) GetComment(ctx context.Context, key, commentID string) (*Comment, error) {
	var comment Comment
	path := apiPrefix + "/issue/" + url.PathEscape(key) + "/comment/" + url.PathEscape(commentID)
	if err := c.getJSON(ctx, path, &comment); err != nil {
		return nil, fmt.Errorf("get comment %s on %s: %w", commentID, key, err)
	}
	return &comment, nil
}

// UpdateComment replaces a comment's body.
func (c *Client) UpdateComment(ctx context.Context, key, commentID string, body json.RawMessage) (*Comment, error) {
	payload := map[string]any{"body": body}

	var comment Comment
	path := apiPrefix + "/issue/" + url.PathEscape(key) + "/comment/" + url.PathEscape(commentID)
	if err := c.putJSON(ctx, path, payload, &comment); err != nil {
		return nil, fmt.Errorf("update comment %s on %s: %w", commentID, key, err)
	}
	return &comment, nil
}

// DeleteComment removes a comment from an issue.
func (c *Client) DeleteComment(ctx context.Context, key, commentID string) error {
	path := apiPrefix + "/issue/" + url.PathEscape(key) + "/comment/" + url.PathEscape(commentID)
	if err := c.deleteReq(ctx, path); err != nil {
		return fmt.Errorf("delete comment %s on %s: %w", commentID, key, err)
	}
	return nil
}
