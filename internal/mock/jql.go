package mock

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/jira-assistant/jira-as/internal/jira"
)

// textTermRe extracts the term of a `text ~ "..."` clause.
var textTermRe = regexp.MustCompile(`(?i)TEXT\s*~\s*["']([^"']+)["']`)

// SearchIssues filters the issue store with upper-cased substring checks
// against the query. This is not a JQL parser: it recognizes the handful of
// clause shapes the test fixtures use (project, issuetype, status,
// assignee/reporter by first name, text ~) and ignores everything else,
// including ORDER BY.
func (c *Client) SearchIssues(_ context.Context, jql string, opts *jira.SearchOptions) (*jira.SearchResult, error) {
	if opts == nil {
		opts = &jira.SearchOptions{}
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	c.mu.Lock()
	issues := make([]jira.Issue, 0, len(c.issues))
	for _, issue := range c.issues {
		issues = append(issues, *issue)
	}
	c.mu.Unlock()

	// Deterministic order: map iteration would shuffle pages between calls.
	sort.Slice(issues, func(i, j int) bool { return issues[i].ID < issues[j].ID })

	issues = filterByJQL(issues, jql)

	total := len(issues)
	start := opts.StartAt
	if start > total {
		start = total
	}
	end := start + maxResults
	if end > total {
		end = total
	}

	return &jira.SearchResult{
		StartAt:    opts.StartAt,
		MaxResults: maxResults,
		Total:      total,
		Issues:     issues[start:end],
	}, nil
}

// SearchAll returns every match; the mock store always fits in one page.
func (c *Client) SearchAll(ctx context.Context, jql string, _ []string) ([]jira.Issue, error) {
	result, err := c.SearchIssues(ctx, jql, &jira.SearchOptions{MaxResults: 1000})
	if err != nil {
		return nil, err
	}
	return result.Issues, nil
}

func filterByJQL(issues []jira.Issue, jql string) []jira.Issue {
	upper := strings.ToUpper(jql)
	lower := strings.ToLower(jql)

	if strings.Contains(upper, "PROJECT = DEMO") || strings.Contains(upper, "PROJECT=DEMO") {
		project := "DEMO-"
		if strings.Contains(upper, "PROJECT = DEMOSD") || strings.Contains(upper, "PROJECT=DEMOSD") {
			project = "DEMOSD-"
		}
		issues = keep(issues, func(i jira.Issue) bool {
			return strings.HasPrefix(i.Key, project)
		})
	}

	if strings.Contains(upper, "ASSIGNEE") {
		if name := firstNameIn(lower); name != "" {
			issues = keep(issues, func(i jira.Issue) bool {
				return i.Fields.Assignee != nil &&
					strings.Contains(strings.ToLower(i.Fields.Assignee.DisplayName), name)
			})
		}
	}

	for _, typeName := range []string{"Bug", "Story", "Epic", "Task"} {
		wanted := strings.ToUpper(typeName)
		if strings.Contains(upper, "ISSUETYPE = "+wanted) || strings.Contains(upper, "ISSUETYPE="+wanted) {
			issues = keep(issues, func(i jira.Issue) bool {
				return i.Fields.IssueType != nil && i.Fields.IssueType.Name == typeName
			})
			break
		}
	}

	for _, statusName := range []string{"In Progress", "To Do", "Done"} {
		wanted := strings.ToUpper(statusName)
		quoted := `"` + wanted + `"`
		if strings.Contains(upper, "STATUS = "+quoted) || strings.Contains(upper, "STATUS="+quoted) ||
			strings.Contains(upper, "STATUS = "+wanted) || strings.Contains(upper, "STATUS="+wanted) {
			issues = keep(issues, func(i jira.Issue) bool {
				return i.Fields.Status != nil && i.Fields.Status.Name == statusName
			})
			break
		}
	}

	if strings.Contains(upper, "REPORTER") {
		if name := firstNameIn(lower); name != "" {
			issues = keep(issues, func(i jira.Issue) bool {
				return i.Fields.Reporter != nil &&
					strings.Contains(strings.ToLower(i.Fields.Reporter.DisplayName), name)
			})
		}
	}

	if m := textTermRe.FindStringSubmatch(jql); m != nil {
		term := strings.ToLower(m[1])
		issues = keep(issues, func(i jira.Issue) bool {
			return strings.Contains(strings.ToLower(i.Fields.Summary), term)
		})
	}

	return issues
}

// firstNameIn recognizes the seed users by first name in the query.
func firstNameIn(lowerJQL string) string {
	switch {
	case strings.Contains(lowerJQL, "jane"):
		return "jane"
	case strings.Contains(lowerJQL, "jason"):
		return "jason"
	}
	return ""
}

func keep(issues []jira.Issue, pred func(jira.Issue) bool) []jira.Issue {
	out := issues[:0]
	for _, i := range issues {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}
