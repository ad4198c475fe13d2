package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
)

var devCmd = &cobra.Command{
	Use:     "dev",
	GroupID: "advanced",
	Short:   "Helpers for branches, commits, and pull requests",
}

var issueKeyInTextRe = regexp.MustCompile(`\b([A-Z][A-Z0-9_]+-[1-9]\d*)\b`)

var slugCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// branchSlug builds a branch name like feature/demo-86-login-fails-on from
// an issue key and summary. The summary part is truncated by whole words.
func branchSlug(branchType, key, summary string, maxWords int) string {
	slug := slugCleanRe.ReplaceAllString(strings.ToLower(summary), "-")
	slug = strings.Trim(slug, "-")
	words := strings.Split(slug, "-")
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	slug = strings.Join(words, "-")

	name := strings.ToLower(key)
	if slug != "" {
		name += "-" + slug
	}
	return branchType + "/" + name
}

// parseCommitKeys extracts the unique issue keys mentioned in commit
// messages, in sorted order.
func parseCommitKeys(messages []string) []string {
	seen := map[string]bool{}
	for _, message := range messages {
		for _, m := range issueKeyInTextRe.FindAllString(message, -1) {
			seen[m] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var branchNameCmd = &cobra.Command{
	Use:   "branch-name <key>",
	Short: "Suggest a branch name for an issue",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		branchType, _ := cmd.Flags().GetString("type")
		maxWords, _ := cmd.Flags().GetInt("words")

		summary := ""
		if client != nil {
			if issue, err := client.GetIssue(rootCtx, key, []string{"summary", "issuetype"}); err == nil {
				summary = issue.Fields.Summary
				if !cmd.Flags().Changed("type") && issue.Fields.IssueType != nil &&
					issue.Fields.IssueType.Name == "Bug" {
					branchType = "bugfix"
				}
			}
		}

		name := branchSlug(branchType, key, summary, maxWords)
		if jsonOutput {
			outputJSON(map[string]string{"key": key, "branch": name})
			return
		}
		fmt.Println(name)
	},
}

var parseCommitsCmd = &cobra.Command{
	Use:   "parse-commits [message...]",
	Short: "Extract issue keys from commit messages (args or stdin)",
	Run: func(_ *cobra.Command, args []string) {
		messages := args
		if len(messages) == 0 {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				messages = append(messages, scanner.Text())
			}
		}

		keys := parseCommitKeys(messages)
		if jsonOutput {
			outputJSON(keys)
			return
		}
		for _, key := range keys {
			fmt.Println(key)
		}
	},
}

var getCommitsCmd = &cobra.Command{
	Use:   "get-commits <key>",
	Short: "Show the issues a commit range references, with their status",
	Long: `Read commit messages from stdin, extract issue keys, and show each
referenced issue. Useful in release tooling:

  git log --format=%s v1.0.. | jira-as dev get-commits DEMO-85`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		var messages []string
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			messages = append(messages, scanner.Text())
		}
		keys := parseCommitKeys(messages)
		if len(args) == 1 {
			keys = append(keys, normalizeKeyArg(args[0]))
			keys = parseCommitKeys([]string{strings.Join(keys, " ")})
		}

		var issues []jira.Issue
		for _, key := range keys {
			issue, err := client.GetIssue(rootCtx, key, []string{"summary", "status"})
			if err != nil {
				WarnError("%s: %v", key, err)
				continue
			}
			issues = append(issues, *issue)
		}

		if jsonOutput {
			outputJSON(issues)
			return
		}
		printIssueList(issues)
	},
}

var prDescriptionCmd = &cobra.Command{
	Use:   "pr-description <key>...",
	Short: "Draft a pull request description from issues",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		var b strings.Builder
		for _, arg := range args {
			key := normalizeKeyArg(arg)
			issue, err := client.GetIssue(rootCtx, key, []string{"summary", "description", "issuetype"})
			if err != nil {
				FatalAPIError(err)
			}

			fmt.Fprintf(&b, "## %s: %s\n\n", issue.Key, issue.Fields.Summary)
			if text := jira.ADFToText(issue.Fields.Description); text != "" {
				fmt.Fprintf(&b, "%s\n\n", text)
			}
		}
		fmt.Fprintf(&b, "---\nResolves %s\n", strings.Join(parseCommitKeys(args), ", "))

		if jsonOutput {
			outputJSON(map[string]string{"description": b.String()})
			return
		}
		fmt.Print(b.String())
	},
}

func init() {
	branchNameCmd.Flags().String("type", "feature", "Branch type prefix (feature, bugfix, chore)")
	branchNameCmd.Flags().Int("words", 4, "Maximum summary words in the slug")

	devCmd.AddCommand(branchNameCmd, parseCommitsCmd, getCommitsCmd, prDescriptionCmd)
	rootCmd.AddCommand(devCmd)
}
