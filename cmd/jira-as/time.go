package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/timeparsing"
	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var timeCmd = &cobra.Command{
	Use:     "time",
	GroupID: "workflow",
	Short:   "Worklogs, estimates, and time reports",
}

// parseStarted turns a --started value into a Jira timestamp. Accepts
// compact durations (-1d), RFC3339, dates, and natural language
// ("yesterday", "last monday 3pm").
func parseStarted(s string) string {
	if s == "" {
		return ""
	}
	t, err := timeparsing.ParseTime(s, time.Now())
	if err != nil {
		FatalErrorWithHint(fmt.Sprintf("%v", err),
			`--started accepts forms like "-1d", "2025-03-01", or "yesterday"`)
	}
	return timeparsing.JiraTimestamp(t)
}

var timeLogCmd = &cobra.Command{
	Use:   "log <key> <duration>",
	Short: `Log work on an issue ("2h 30m", "1d")`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		seconds, err := timeparsing.ParseWorkDuration(args[1])
		if err != nil {
			FatalErrorWithHint(fmt.Sprintf("%v", err), `durations look like "2h", "2h 30m", "1d" (1d = 8h, 1w = 5d)`)
		}

		comment, _ := cmd.Flags().GetString("comment")
		started, _ := cmd.Flags().GetString("started")
		adjust, _ := cmd.Flags().GetString("adjust-estimate")
		newEstimate, _ := cmd.Flags().GetString("new-estimate")

		input := jira.WorklogInput{
			TimeSpentSeconds: seconds,
			Started:          parseStarted(started),
			AdjustEstimate:   adjust,
			NewEstimate:      newEstimate,
		}
		if comment != "" {
			input.Comment = jira.TextToADF(comment)
		}

		worklog, err := client.AddWorklog(rootCtx, key, input)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(worklog)
			return
		}
		okf("Logged %s on %s", timeparsing.FormatWorkDuration(seconds), key)
	},
}

var timeWorklogsCmd = &cobra.Command{
	Use:   "worklogs <key>",
	Short: "List worklogs on an issue",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		page, err := client.GetWorklogs(rootCtx, key, 0, 100)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(page)
			return
		}
		total := 0
		for _, w := range page.Worklogs {
			author := ""
			if w.Author != nil {
				author = w.Author.DisplayName
			}
			fmt.Printf("  %-6s %-10s %-20s %s\n", w.ID,
				timeparsing.FormatWorkDuration(w.TimeSpentSeconds), author,
				ui.RenderMuted(w.Started))
			total += w.TimeSpentSeconds
		}
		fmt.Printf("\n  Total: %s\n", timeparsing.FormatWorkDuration(total))
	},
}

var timeDeleteCmd = &cobra.Command{
	Use:   "delete <key> <worklog-id>",
	Short: "Delete a worklog",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		if err := client.DeleteWorklog(rootCtx, key, args[1]); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"key": key, "worklog": args[1], "deleted": true})
			return
		}
		okf("Deleted worklog %s from %s", args[1], key)
	},
}

var timeEstimateCmd = &cobra.Command{
	Use:   "estimate <key> <duration>",
	Short: "Set the remaining estimate",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		if _, err := timeparsing.ParseWorkDuration(args[1]); err != nil {
			FatalError("%v", err)
		}
		fields := map[string]any{
			"timetracking": map[string]any{"remainingEstimate": args[1]},
		}
		if err := client.UpdateIssue(rootCtx, key, fields); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"key": key, "remainingEstimate": args[1]})
			return
		}
		okf("Set remaining estimate on %s to %s", key, args[1])
	},
}

var timeTrackingCmd = &cobra.Command{
	Use:   "tracking <key>",
	Short: "Show estimate vs. logged time for an issue",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		issue, err := client.GetIssue(rootCtx, key, []string{"summary", "timetracking"})
		if err != nil {
			FatalAPIError(err)
		}
		tt := issue.Fields.TimeTracking
		if tt == nil {
			tt = &jira.TimeTracking{}
		}
		if jsonOutput {
			outputJSON(map[string]any{"key": key, "timetracking": tt})
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(key+"  "+issue.Fields.Summary))
		fmt.Printf("  Original:  %s\n", orDash(tt.OriginalEstimate))
		fmt.Printf("  Remaining: %s\n", orDash(tt.RemainingEstimate))
		fmt.Printf("  Logged:    %s\n", orDash(tt.TimeSpent))
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// worklogReport is one issue's row in a time report.
type worklogReport struct {
	Key     string `json:"key" yaml:"key"`
	Summary string `json:"summary" yaml:"summary"`
	Seconds int    `json:"seconds" yaml:"seconds"`
	Spent   string `json:"spent" yaml:"spent"`
}

// collectReport gathers logged time per issue for a JQL query.
func collectReport(query string) []worklogReport {
	issues, err := client.SearchAll(rootCtx, query, []string{"summary"})
	if err != nil {
		FatalAPIError(err)
	}

	report := make([]worklogReport, 0, len(issues))
	for _, issue := range issues {
		page, err := client.GetWorklogs(rootCtx, issue.Key, 0, 100)
		if err != nil {
			FatalAPIError(err)
		}
		seconds := 0
		for _, w := range page.Worklogs {
			seconds += w.TimeSpentSeconds
		}
		if seconds == 0 {
			continue
		}
		report = append(report, worklogReport{
			Key:     issue.Key,
			Summary: issue.Fields.Summary,
			Seconds: seconds,
			Spent:   timeparsing.FormatWorkDuration(seconds),
		})
	}
	return report
}

var timeReportCmd = &cobra.Command{
	Use:   "report <jql>",
	Short: "Sum logged time per issue for a JQL query",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		report := collectReport(args[0])
		if jsonOutput {
			outputJSON(report)
			return
		}
		total := 0
		for _, row := range report {
			fmt.Printf("  %-12s %-10s %s\n", row.Key, row.Spent, row.Summary)
			total += row.Seconds
		}
		fmt.Printf("\n  Total: %s across %d issue(s)\n",
			timeparsing.FormatWorkDuration(total), len(report))
	},
}

var timeBulkLogCmd = &cobra.Command{
	Use:   "bulk-log <key=duration>...",
	Short: `Log work on several issues at once ("DEMO-85=2h DEMO-86=30m")`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		comment, _ := cmd.Flags().GetString("comment")

		type entry struct {
			key     string
			seconds int
		}
		entries := make([]entry, 0, len(args))
		for _, arg := range args {
			key, duration, found := strings.Cut(arg, "=")
			if !found {
				FatalErrorWithHint(fmt.Sprintf("bad entry %q", arg), "entries look like DEMO-85=2h")
			}
			normalized, err := validation.NormalizeIssueKey(key)
			if err != nil {
				FatalError("%v", err)
			}
			seconds, err := timeparsing.ParseWorkDuration(duration)
			if err != nil {
				FatalError("%s: %v", normalized, err)
			}
			entries = append(entries, entry{normalized, seconds})
		}

		keys := make([]string, len(entries))
		byKey := make(map[string]int, len(entries))
		for i, e := range entries {
			keys[i] = e.key
			byKey[e.key] = e.seconds
		}
		runBulk(keys, func(key string) error {
			input := jira.WorklogInput{TimeSpentSeconds: byKey[key]}
			if comment != "" {
				input.Comment = jira.TextToADF(comment)
			}
			_, err := client.AddWorklog(rootCtx, key, input)
			return err
		})
	},
}

var timeExportCmd = &cobra.Command{
	Use:   "export <jql>",
	Short: "Export a time report as json or yaml",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		report := collectReport(args[0])

		var data []byte
		var err error
		switch format {
		case "json":
			data, err = json.MarshalIndent(report, "", "  ")
			data = append(data, '\n')
		case "yaml":
			data, err = yaml.Marshal(report)
		default:
			FatalError("unknown format %q (json or yaml)", format)
		}
		if err != nil {
			FatalError("encoding report: %v", err)
		}

		if output == "" || output == "-" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			FatalError("writing %s: %v", output, err)
		}
		okf("Wrote %d issue(s) to %s", len(report), output)
	},
}

func init() {
	timeLogCmd.Flags().StringP("comment", "c", "", "Worklog comment")
	timeLogCmd.Flags().String("started", "", "When the work started")
	timeLogCmd.Flags().String("adjust-estimate", "", "Estimate adjustment (auto, leave, new, manual)")
	timeLogCmd.Flags().String("new-estimate", "", `New remaining estimate (with --adjust-estimate new)`)
	timeBulkLogCmd.Flags().StringP("comment", "c", "", "Worklog comment for every entry")
	timeExportCmd.Flags().String("format", "json", "Export format (json or yaml)")
	timeExportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	timeCmd.AddCommand(timeLogCmd, timeWorklogsCmd, timeDeleteCmd, timeEstimateCmd,
		timeTrackingCmd, timeReportCmd, timeBulkLogCmd, timeExportCmd)
	rootCmd.AddCommand(timeCmd)
}
