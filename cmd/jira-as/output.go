package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jira-assistant/jira-as/internal/debug"
	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/ui"
)

// outputJSON outputs data as pretty-printed JSON to stdout.
func outputJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// outputJSONError outputs an error as JSON to stderr and exits with code 1.
func outputJSONError(err error, code string) {
	errObj := map[string]string{"error": err.Error()}
	if code != "" {
		errObj["code"] = code
	}
	encoder := json.NewEncoder(os.Stderr)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(errObj)
	os.Exit(1)
}

// printIssueLine renders the one-line list form: KEY  Status  Priority  Summary.
func printIssueLine(issue *jira.Issue) {
	status := "?"
	if issue.Fields.Status != nil {
		status = issue.Fields.Status.Name
	}
	priority := "-"
	if issue.Fields.Priority != nil {
		priority = issue.Fields.Priority.Name
	}
	assignee := "unassigned"
	if issue.Fields.Assignee != nil {
		assignee = issue.Fields.Assignee.DisplayName
	}
	fmt.Printf("%-12s %-14s %-8s %-20s %s\n",
		ui.AccentStyle.Render(issue.Key),
		ui.RenderStatus(status),
		ui.RenderPriority(priority),
		assignee,
		issue.Fields.Summary)
}

// printIssueList renders a slice of issues, or a muted "no issues" line.
func printIssueList(issues []jira.Issue) {
	if len(issues) == 0 {
		fmt.Println(ui.RenderMuted("No issues found"))
		return
	}
	for i := range issues {
		printIssueLine(&issues[i])
	}
}

// printIssueDetail renders the full single-issue view.
func printIssueDetail(issue *jira.Issue) {
	fmt.Printf("%s: %s\n", ui.RenderHeader(issue.Key), issue.Fields.Summary)

	if issue.Fields.Status != nil {
		fmt.Printf("  Status:    %s\n", ui.RenderStatus(issue.Fields.Status.Name))
	}
	if issue.Fields.IssueType != nil {
		fmt.Printf("  Type:      %s\n", issue.Fields.IssueType.Name)
	}
	if issue.Fields.Priority != nil {
		fmt.Printf("  Priority:  %s\n", ui.RenderPriority(issue.Fields.Priority.Name))
	}
	if issue.Fields.Assignee != nil {
		fmt.Printf("  Assignee:  %s\n", issue.Fields.Assignee.DisplayName)
	} else {
		fmt.Printf("  Assignee:  %s\n", ui.RenderMuted("unassigned"))
	}
	if issue.Fields.Reporter != nil {
		fmt.Printf("  Reporter:  %s\n", issue.Fields.Reporter.DisplayName)
	}
	if len(issue.Fields.Labels) > 0 {
		fmt.Printf("  Labels:    %s\n", strings.Join(issue.Fields.Labels, ", "))
	}
	if issue.Fields.Created != "" {
		fmt.Printf("  Created:   %s\n", issue.Fields.Created)
	}

	if desc := jira.ADFToText(issue.Fields.Description); desc != "" {
		fmt.Printf("\n%s\n", desc)
	}

	if len(issue.Fields.IssueLinks) > 0 {
		fmt.Printf("\n%s\n", ui.RenderHeader("Links"))
		for _, link := range issue.Fields.IssueLinks {
			if link.OutwardIssue != nil && link.OutwardIssue.Key != issue.Key {
				fmt.Printf("  %s %s\n", link.Type.Outward, link.OutwardIssue.Key)
			} else if link.InwardIssue != nil {
				fmt.Printf("  %s %s\n", link.Type.Inward, link.InwardIssue.Key)
			}
		}
	}
}

// okf prints a checked confirmation line unless quiet mode is on.
func okf(format string, args ...interface{}) {
	if debug.IsQuiet() {
		return
	}
	fmt.Printf("%s %s\n", ui.RenderPass(ui.IconPass), fmt.Sprintf(format, args...))
}
