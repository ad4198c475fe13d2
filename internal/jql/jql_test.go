package jql

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{
			name:   "empty",
			params: Params{},
			want:   "",
		},
		{
			name:   "project only",
			params: Params{Project: "DEMO"},
			want:   "project = DEMO",
		},
		{
			name:   "project and type",
			params: Params{Project: "DEMO", IssueType: "Bug"},
			want:   "project = DEMO AND issuetype = Bug",
		},
		{
			name:   "quoted status",
			params: Params{Status: "In Progress"},
			want:   `status = "In Progress"`,
		},
		{
			name:   "current user function unquoted",
			params: Params{Assignee: "currentUser()"},
			want:   "assignee = currentUser()",
		},
		{
			name:   "labels and text",
			params: Params{Labels: []string{"backend", "p1"}, Text: "timeout"},
			want:   `labels = backend AND labels = p1 AND text ~ "timeout"`,
		},
		{
			name:   "order by",
			params: Params{Project: "DEMO", OrderBy: "created", Desc: true},
			want:   "project = DEMO ORDER BY created DESC",
		},
		{
			name:   "order by without clauses",
			params: Params{OrderBy: "updated"},
			want:   "ORDER BY updated ASC",
		},
		{
			name:   "extra raw jql",
			params: Params{Project: "DEMO", Extra: "sprint in openSprints()"},
			want:   "project = DEMO AND sprint in openSprints()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.params); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLintClean(t *testing.T) {
	queries := []string{
		"project = DEMO",
		`project = DEMO AND status = "In Progress" ORDER BY created DESC`,
		"assignee = currentUser() AND (priority = High OR priority = Highest)",
		"cf[10016] >= 5",
		"text ~ \"login bug\"",
	}
	for _, q := range queries {
		if issues := Lint(q); len(issues) != 0 {
			t.Errorf("Lint(%q) = %v, want clean", q, issues)
		}
	}
}

func TestLintProblems(t *testing.T) {
	tests := []struct {
		query string
		wants string
	}{
		{"", "empty"},
		{`project = "DEMO`, "unbalanced double quotes"},
		{"(project = DEMO", "unclosed parenthesis"},
		{"project = DEMO)", "unmatched closing parenthesis"},
		{"project = DEMO AND", "dangling AND"},
		{"projct = DEMO", `unknown field "projct"`},
	}

	for _, tt := range tests {
		t.Run(tt.wants, func(t *testing.T) {
			issues := Lint(tt.query)
			found := false
			for _, issue := range issues {
				if strings.Contains(issue, tt.wants) {
					found = true
				}
			}
			if !found {
				t.Errorf("Lint(%q) = %v, want an issue containing %q", tt.query, issues, tt.wants)
			}
		})
	}
}
