// Package jql builds and sanity-checks JQL query strings.
package jql

import (
	"fmt"
	"strings"
)

// Params describes a query assembled from CLI flags. Zero-valued fields are
// omitted from the output.
type Params struct {
	Project   string
	IssueType string
	Status    string
	Assignee  string // account id, display name, or the literal currentUser()
	Reporter  string
	Labels    []string
	Text      string
	Extra     string // raw JQL appended as-is
	OrderBy   string
	Desc      bool
}

// Build renders the params as a JQL string. Clauses are joined with AND in a
// fixed order so the same flags always produce the same query.
func Build(p Params) string {
	var clauses []string

	add := func(field, value string) {
		if value != "" {
			clauses = append(clauses, fmt.Sprintf("%s = %s", field, quoteValue(value)))
		}
	}

	add("project", p.Project)
	add("issuetype", p.IssueType)
	add("status", p.Status)
	add("assignee", p.Assignee)
	add("reporter", p.Reporter)
	for _, label := range p.Labels {
		if label != "" {
			clauses = append(clauses, fmt.Sprintf("labels = %s", quoteValue(label)))
		}
	}
	if p.Text != "" {
		clauses = append(clauses, fmt.Sprintf("text ~ %q", p.Text))
	}
	if p.Extra != "" {
		clauses = append(clauses, p.Extra)
	}

	query := strings.Join(clauses, " AND ")
	if p.OrderBy != "" {
		direction := "ASC"
		if p.Desc {
			direction = "DESC"
		}
		if query != "" {
			query += " "
		}
		query += fmt.Sprintf("ORDER BY %s %s", p.OrderBy, direction)
	}
	return query
}

// quoteValue quotes a value when it needs quoting. Function calls like
// currentUser() and bare words pass through unquoted.
func quoteValue(v string) string {
	if strings.HasSuffix(v, ")") && strings.Contains(v, "(") {
		return v
	}
	if strings.ContainsAny(v, " \t\"'") {
		return fmt.Sprintf("%q", v)
	}
	return v
}
