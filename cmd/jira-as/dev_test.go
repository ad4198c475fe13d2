package main

import (
	"reflect"
	"testing"
)

func TestBranchSlug(t *testing.T) {
	tests := []struct {
		branchType string
		key        string
		summary    string
		maxWords   int
		want       string
	}{
		{"feature", "DEMO-85", "User Authentication", 4, "feature/demo-85-user-authentication"},
		{"bugfix", "DEMO-86", "Login fails on mobile Safari", 4, "bugfix/demo-86-login-fails-on-mobile"},
		{"feature", "DEMO-87", "Update API documentation!!!", 2, "feature/demo-87-update-api"},
		{"feature", "PROJ-1", "", 4, "feature/proj-1"},
		{"chore", "DEMO-91", "  Search -- pagination   bug  ", 10, "chore/demo-91-search-pagination-bug"},
	}
	for _, tt := range tests {
		got := branchSlug(tt.branchType, tt.key, tt.summary, tt.maxWords)
		if got != tt.want {
			t.Errorf("branchSlug(%q, %q, %q, %d) = %q, want %q",
				tt.branchType, tt.key, tt.summary, tt.maxWords, got, tt.want)
		}
	}
}

func TestParseCommitKeys(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     []string
	}{
		{
			name:     "single key",
			messages: []string{"DEMO-85: add login form"},
			want:     []string{"DEMO-85"},
		},
		{
			name:     "duplicates collapse",
			messages: []string{"fix DEMO-86", "DEMO-86 follow-up", "docs for DEMO-87"},
			want:     []string{"DEMO-86", "DEMO-87"},
		},
		{
			name:     "sorted output",
			messages: []string{"PROJ-2 then DEMO-1"},
			want:     []string{"DEMO-1", "PROJ-2"},
		},
		{
			name:     "no keys",
			messages: []string{"refactor parser", "bump deps"},
			want:     []string{},
		},
		{
			name:     "lowercase ignored",
			messages: []string{"demo-85 is not a key"},
			want:     []string{},
		},
		{
			name:     "no leading zeros",
			messages: []string{"DEMO-085 looks wrong but DEMO-85 matches"},
			want:     []string{"DEMO-85"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCommitKeys(tt.messages)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCommitKeys(%v) = %v, want %v", tt.messages, got, tt.want)
			}
		})
	}
}
