package jql

import (
	"fmt"
	"regexp"
	"strings"
)

// knownFields are the JQL fields the linter recognizes. The list covers the
// system fields plus the custom field syntax; anything else is flagged as a
// probable typo.
var knownFields = map[string]bool{
	"assignee": true, "attachments": true, "category": true, "comment": true,
	"component": true, "created": true, "creator": true, "description": true,
	"due": true, "duedate": true, "filter": true, "fixversion": true,
	"issuekey": true, "issuetype": true, "key": true, "labels": true,
	"lastviewed": true, "parent": true, "priority": true, "project": true,
	"reporter": true, "resolution": true, "resolved": true, "sprint": true,
	"status": true, "statuscategory": true, "summary": true, "text": true,
	"type": true, "updated": true, "watcher": true, "watchers": true,
	"worklogauthor": true, "worklogdate": true,
}

var (
	customFieldRe = regexp.MustCompile(`^cf\[\d+\]$`)
	fieldClauseRe = regexp.MustCompile(`(?i)(^|\(|\bAND\s+|\bOR\s+|\bNOT\s+)\s*([a-zA-Z][a-zA-Z0-9_]*|cf\[\d+\])\s*(=|!=|~|!~|>|>=|<|<=|\bIN\b|\bNOT\s+IN\b|\bIS\b|\bWAS\b|\bCHANGED\b)`)
)

// Lint checks a JQL string for structural problems and unknown fields.
// Returns a list of human-readable issues, empty when the query looks fine.
// It is a heuristic check, not a parser: a clean result does not guarantee
// the server will accept the query.
func Lint(query string) []string {
	var issues []string

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []string{"query is empty"}
	}

	if strings.Count(query, `"`)%2 != 0 {
		issues = append(issues, "unbalanced double quotes")
	}
	if strings.Count(query, `'`)%2 != 0 {
		issues = append(issues, "unbalanced single quotes")
	}

	depth := 0
	for _, r := range query {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				issues = append(issues, "unmatched closing parenthesis")
				depth = 0
			}
		}
	}
	if depth > 0 {
		issues = append(issues, "unclosed parenthesis")
	}

	upper := strings.ToUpper(trimmed)
	for _, op := range []string{"AND", "OR", "NOT"} {
		if strings.HasSuffix(upper, " "+op) || upper == op {
			issues = append(issues, fmt.Sprintf("query ends with dangling %s", op))
		}
	}

	for _, m := range fieldClauseRe.FindAllStringSubmatch(query, -1) {
		field := strings.ToLower(m[2])
		if knownFields[field] || customFieldRe.MatchString(field) {
			continue
		}
		issues = append(issues, fmt.Sprintf("unknown field %q", m[2]))
	}

	return issues
}
