package main

import (
	"encoding/json"
	"testing"

	"github.com/jira-assistant/jira-as/internal/jira"
)

func TestCloneFields(t *testing.T) {
	source := &jira.Issue{
		Key: "DEMO-86",
		Fields: jira.IssueFields{
			Summary:     "Login fails on mobile Safari",
			Description: json.RawMessage(`{"type":"doc","version":1,"content":[]}`),
			Project:     &jira.Project{Key: "DEMO"},
			IssueType:   &jira.IssueType{Name: "Bug"},
			Priority:    &jira.Priority{Name: "High"},
			Labels:      []string{"mobile", "auth"},
		},
	}

	fields := cloneFields(source, "CLONE - ")

	if got := fields["summary"]; got != "CLONE - Login fails on mobile Safari" {
		t.Errorf("summary = %v", got)
	}
	project, ok := fields["project"].(map[string]any)
	if !ok || project["key"] != "DEMO" {
		t.Errorf("project = %v", fields["project"])
	}
	issueType, ok := fields["issuetype"].(map[string]any)
	if !ok || issueType["name"] != "Bug" {
		t.Errorf("issuetype = %v", fields["issuetype"])
	}
	priority, ok := fields["priority"].(map[string]any)
	if !ok || priority["name"] != "High" {
		t.Errorf("priority = %v", fields["priority"])
	}
	if _, ok := fields["description"]; !ok {
		t.Error("description not carried over")
	}
}

func TestCloneFieldsSparseIssue(t *testing.T) {
	source := &jira.Issue{
		Key:    "DEMO-87",
		Fields: jira.IssueFields{Summary: "Update API documentation"},
	}

	fields := cloneFields(source, "")

	if got := fields["summary"]; got != "Update API documentation" {
		t.Errorf("summary = %v", got)
	}
	for _, key := range []string{"project", "issuetype", "priority", "labels", "description"} {
		if _, ok := fields[key]; ok {
			t.Errorf("unexpected field %q on sparse clone", key)
		}
	}
}
