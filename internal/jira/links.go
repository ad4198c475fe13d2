package jira

import (
	"context"
	"fmt"
	"net/url"
)

// LinkIssues creates a typed link between two issues. linkType is the link
// type name, e.g. "Blocks" or "Relates".
func (c *Client) LinkIssues(ctx context.Context, inwardKey, outwardKey, linkType string) error {
	payload := map[string]any{
		"type":         map[string]any{"name": linkType},
		"inwardIssue":  map[string]any{"key": inwardKey},
		"outwardIssue": map[string]any{"key": outwardKey},
	}
	if err := c.postJSON(ctx, apiPrefix+"/issueLink", payload, nil); err != nil {
		return fmt.Errorf("link %s -> %s: %w", inwardKey, outwardKey, err)
	}
	return nil
}

// DeleteLink removes an issue link by link id.
func (c *Client) DeleteLink(ctx context.Context, linkID string) error {
	if err := c.deleteReq(ctx, apiPrefix+"/issueLink/"+url.PathEscape(linkID)); err != nil {
		return fmt.Errorf("delete link %s: %w", linkID, err)
	}
	return nil
}

// GetLinkTypes lists the issue link types defined on the site.
func (c *Client) GetLinkTypes(ctx context.Context) ([]LinkType, error) {
	var result struct {
		IssueLinkTypes []LinkType `json:"issueLinkTypes"`
	}
	if err := c.getJSON(ctx, apiPrefix+"/issueLinkType", &result); err != nil {
		return nil, fmt.Errorf("list link types: %w", err)
	}
	return result.IssueLinkTypes, nil
}
