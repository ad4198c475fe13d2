package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// Comments, worklogs, watchers, and links attach only to existing issues;
// every method checks the issue first so fixture state stays consistent.

// AddComment appends a comment authored by the mock's current user.
func (c *Client) AddComment(_ context.Context, key string, body json.RawMessage) (*jira.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}

	author := seedUsers[currentUserID]
	comment := jira.Comment{
		ID:      strconv.Itoa(len(c.comments[key]) + 1),
		Body:    body,
		Author:  &author,
		Created: writeTime,
		Updated: writeTime,
	}
	c.comments[key] = append(c.comments[key], comment)
	return &comment, nil
}

// GetComments pages through an issue's comments.
func (c *Client) GetComments(_ context.Context, key string, startAt, maxResults int) (*jira.CommentPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = 50
	}

	comments := c.comments[key]
	return &jira.CommentPage{
		StartAt:    startAt,
		MaxResults: maxResults,
		Total:      len(comments),
		Comments:   pageOf(comments, startAt, maxResults),
	}, nil
}

// GetComment fetches a single comment by id.
func (c *Client) GetComment(_ context.Context, key, commentID string) (*jira.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}
	for i := range c.comments[key] {
		if c.comments[key][i].ID == commentID {
			comment := c.comments[key][i]
			return &comment, nil
		}
	}
	return nil, &jira.NotFoundError{Resource: "comment " + commentID}
}

// UpdateComment replaces a comment body.
func (c *Client) UpdateComment(_ context.Context, key, commentID string, body json.RawMessage) (*jira.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}
	for i := range c.comments[key] {
		if c.comments[key][i].ID == commentID {
			c.comments[key][i].Body = body
			c.comments[key][i].Updated = writeTime
			comment := c.comments[key][i]
			return &comment, nil
		}
	}
	return nil, &jira.NotFoundError{Resource: "comment " + commentID}
}

// DeleteComment removes a comment; deleting an absent comment is a no-op,
// matching the original mock.
func (c *Client) DeleteComment(_ context.Context, key, commentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return err
	}
	kept := c.comments[key][:0]
	for _, comment := range c.comments[key] {
		if comment.ID != commentID {
			kept = append(kept, comment)
		}
	}
	c.comments[key] = kept
	return nil
}

// AddWorklog records logged work on an issue.
func (c *Client) AddWorklog(_ context.Context, key string, input jira.WorklogInput) (*jira.Worklog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}

	timeSpent := input.TimeSpent
	if timeSpent == "" {
		timeSpent = fmt.Sprintf("%dm", input.TimeSpentSeconds/60)
	}
	started := input.Started
	if started == "" {
		started = writeTime
	}

	author := seedUsers[currentUserID]
	wl := jira.Worklog{
		ID:               strconv.Itoa(len(c.worklogs[key]) + 1),
		TimeSpent:        timeSpent,
		TimeSpentSeconds: input.TimeSpentSeconds,
		Started:          started,
		Comment:          input.Comment,
		Author:           &author,
		Created:          writeTime,
		Updated:          writeTime,
	}
	c.worklogs[key] = append(c.worklogs[key], wl)
	return &wl, nil
}

// GetWorklogs pages through an issue's worklogs.
func (c *Client) GetWorklogs(_ context.Context, key string, startAt, maxResults int) (*jira.WorklogPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = 1000
	}

	worklogs := c.worklogs[key]
	return &jira.WorklogPage{
		StartAt:    startAt,
		MaxResults: maxResults,
		Total:      len(worklogs),
		Worklogs:   pageOf(worklogs, startAt, maxResults),
	}, nil
}

// DeleteWorklog removes a worklog entry.
func (c *Client) DeleteWorklog(_ context.Context, key, worklogID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return err
	}
	kept := c.worklogs[key][:0]
	for _, wl := range c.worklogs[key] {
		if wl.ID != worklogID {
			kept = append(kept, wl)
		}
	}
	c.worklogs[key] = kept
	return nil
}

// GetWatchers resolves the stored account ids to users.
func (c *Client) GetWatchers(_ context.Context, key string) ([]jira.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return nil, err
	}
	users := make([]jira.User, 0, len(c.watchers[key]))
	for _, accountID := range c.watchers[key] {
		users = append(users, *c.userByID(accountID))
	}
	return users, nil
}

// AddWatcher adds a watcher once; re-adding is a no-op.
func (c *Client) AddWatcher(_ context.Context, key, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return err
	}
	for _, id := range c.watchers[key] {
		if id == accountID {
			return nil
		}
	}
	c.watchers[key] = append(c.watchers[key], accountID)
	return nil
}

// RemoveWatcher removes a watcher.
func (c *Client) RemoveWatcher(_ context.Context, key, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.issue(key); err != nil {
		return err
	}
	c.watchers[key] = removeString(c.watchers[key], accountID)
	return nil
}

// LinkIssues links two stored issues. Both ends must exist.
func (c *Client) LinkIssues(_ context.Context, inwardKey, outwardKey, linkType string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	inward, err := c.issue(inwardKey)
	if err != nil {
		return err
	}
	outward, err := c.issue(outwardKey)
	if err != nil {
		return err
	}

	lt := c.linkType(linkType)
	if lt == nil {
		return &jira.ValidationError{Messages: []string{fmt.Sprintf("unknown link type %q", linkType)}}
	}

	c.nextLinkID++
	id := strconv.Itoa(c.nextLinkID)
	c.links[id] = &jira.IssueLink{
		ID:           id,
		Type:         *lt,
		InwardIssue:  &jira.Issue{ID: inward.ID, Key: inward.Key},
		OutwardIssue: &jira.Issue{ID: outward.ID, Key: outward.Key},
	}
	return nil
}

// DeleteLink removes a link by id.
func (c *Client) DeleteLink(_ context.Context, linkID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.links[linkID]; !ok {
		return &jira.NotFoundError{Resource: "link " + linkID}
	}
	delete(c.links, linkID)
	return nil
}

// GetLinkTypes returns the static link type table.
func (c *Client) GetLinkTypes(_ context.Context) ([]jira.LinkType, error) {
	out := make([]jira.LinkType, len(seedLinkTypes))
	copy(out, seedLinkTypes)
	return out, nil
}

func (c *Client) linkType(name string) *jira.LinkType {
	for i := range seedLinkTypes {
		if seedLinkTypes[i].Name == name {
			lt := seedLinkTypes[i]
			return &lt
		}
	}
	return nil
}

// linksFor returns the links touching an issue, sorted by id. Callers must
// hold c.mu.
func (c *Client) linksFor(key string) []jira.IssueLink {
	var out []jira.IssueLink
	for id := 1; id <= c.nextLinkID; id++ {
		link, ok := c.links[strconv.Itoa(id)]
		if ok && linkTouches(link, key) {
			out = append(out, *link)
		}
	}
	return out
}

func pageOf[T any](items []T, startAt, maxResults int) []T {
	if startAt > len(items) {
		startAt = len(items)
	}
	end := startAt + maxResults
	if end > len(items) {
		end = len(items)
	}
	return items[startAt:end]
}
