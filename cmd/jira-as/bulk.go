package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var bulkCmd = &cobra.Command{
	Use:     "bulk",
	GroupID: "issues",
	Short:   "Apply one change across many issues",
	Long: `Apply one change across many issues. Each issue is attempted
independently: the summary reports how many succeeded and how many failed,
and the exit status is nonzero only when every issue failed.`,
}

type bulkFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

type bulkSummary struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []bulkFailure `json:"failed"`
}

// runBulk applies op to each key sequentially and reports the outcome.
func runBulk(keys []string, op func(key string) error) {
	summary := bulkSummary{Succeeded: []string{}, Failed: []bulkFailure{}}
	for _, key := range keys {
		if err := op(key); err != nil {
			summary.Failed = append(summary.Failed, bulkFailure{Key: key, Error: err.Error()})
			if !jsonOutput {
				fmt.Printf("%s %s: %v\n", ui.RenderFail(ui.IconFail), key, err)
			}
			continue
		}
		summary.Succeeded = append(summary.Succeeded, key)
		if !jsonOutput {
			fmt.Printf("%s %s\n", ui.RenderPass(ui.IconPass), key)
		}
	}

	allFailed := len(summary.Succeeded) == 0 && len(summary.Failed) > 0
	if jsonOutput {
		outputJSON(summary)
	} else {
		fmt.Printf("\n%d succeeded, %d failed\n", len(summary.Succeeded), len(summary.Failed))
	}
	if allFailed {
		os.Exit(1)
	}
}

// bulkKeys resolves the target keys from positional args or a --jql flag.
func bulkKeys(cmd *cobra.Command, args []string) []string {
	query, _ := cmd.Flags().GetString("jql")
	if query != "" {
		if len(args) > 0 {
			FatalError("pass issue keys or --jql, not both")
		}
		issues, err := client.SearchAll(rootCtx, query, []string{"summary"})
		if err != nil {
			FatalAPIError(err)
		}
		keys := make([]string, len(issues))
		for i, issue := range issues {
			keys[i] = issue.Key
		}
		if len(keys) == 0 {
			FatalError("query matched no issues")
		}
		return keys
	}

	if len(args) == 0 {
		FatalErrorWithHint("no issues given", "pass issue keys or --jql")
	}
	keys, err := validation.NormalizeIssueKeys(args)
	if err != nil {
		FatalError("%v", err)
	}
	return keys
}

var bulkTransitionCmd = &cobra.Command{
	Use:   "transition <name> [key...]",
	Short: "Transition many issues by transition or status name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		keys := bulkKeys(cmd, args[1:])

		runBulk(keys, func(key string) error {
			transitions, err := client.GetTransitions(rootCtx, key)
			if err != nil {
				return err
			}
			for _, t := range transitions {
				if strings.EqualFold(t.Name, target) || strings.EqualFold(t.To.Name, target) {
					return client.TransitionIssue(rootCtx, key, t.ID, nil)
				}
			}
			return fmt.Errorf("no transition %q", target)
		})
	},
}

var bulkAssignCmd = &cobra.Command{
	Use:   "assign <account-id> [key...]",
	Short: "Assign many issues (use - as the account id to unassign)",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		accountID := args[0]
		if accountID == "-" {
			accountID = ""
		} else if err := validation.ValidateAccountID(accountID); err != nil {
			FatalError("%v", err)
		}
		keys := bulkKeys(cmd, args[1:])

		runBulk(keys, func(key string) error {
			return client.AssignIssue(rootCtx, key, accountID)
		})
	},
}

var bulkPriorityCmd = &cobra.Command{
	Use:   "priority <name> [key...]",
	Short: "Set the priority on many issues",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		priority := args[0]
		keys := bulkKeys(cmd, args[1:])

		runBulk(keys, func(key string) error {
			return client.UpdateIssue(rootCtx, key, map[string]any{
				"priority": map[string]any{"name": priority},
			})
		})
	},
}

// cloneFields extracts the creatable fields of an issue for cloning.
func cloneFields(issue *jira.Issue, summaryPrefix string) map[string]any {
	fields := map[string]any{
		"summary": summaryPrefix + issue.Fields.Summary,
	}
	if issue.Fields.Project != nil {
		fields["project"] = map[string]any{"key": issue.Fields.Project.Key}
	}
	if issue.Fields.IssueType != nil {
		fields["issuetype"] = map[string]any{"name": issue.Fields.IssueType.Name}
	}
	if len(issue.Fields.Description) > 0 {
		fields["description"] = json.RawMessage(issue.Fields.Description)
	}
	if issue.Fields.Priority != nil {
		fields["priority"] = map[string]any{"name": issue.Fields.Priority.Name}
	}
	if len(issue.Fields.Labels) > 0 {
		fields["labels"] = issue.Fields.Labels
	}
	return fields
}

var bulkCloneCmd = &cobra.Command{
	Use:   "clone [key...]",
	Short: "Clone many issues",
	Run: func(cmd *cobra.Command, args []string) {
		prefix, _ := cmd.Flags().GetString("prefix")
		keys := bulkKeys(cmd, args)

		runBulk(keys, func(key string) error {
			source, err := client.GetIssue(rootCtx, key, nil)
			if err != nil {
				return err
			}
			created, err := client.CreateIssue(rootCtx, cloneFields(source, prefix))
			if err != nil {
				return err
			}
			if !jsonOutput {
				fmt.Printf("  %s -> %s\n", key, ui.AccentStyle.Render(created.Key))
			}
			return nil
		})
	},
}

var bulkCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create many issues from a JSON array of field objects",
	Long: `Create many issues from a JSON array of field objects. Pass - to
read from stdin. Objects without a project get the current project:

  [{"summary": "First", "issuetype": {"name": "Task"}}, ...]`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			FatalError("%v", err)
		}

		var issues []map[string]any
		if err := json.Unmarshal(data, &issues); err != nil {
			FatalError("parsing issue list: %v", err)
		}
		if len(issues) == 0 {
			FatalError("no issues in input")
		}
		for _, fields := range issues {
			if fields != nil && fields["project"] == nil && projectFlag != "" {
				fields["project"] = map[string]any{"key": projectFlag}
			}
		}

		result, err := client.CreateIssuesBulk(rootCtx, issues)
		if err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(result)
			return
		}
		for _, created := range result.Issues {
			fmt.Printf("%s %s\n", ui.RenderPass(ui.IconPass), created.Key)
		}
		for _, failure := range result.Errors {
			fmt.Printf("%s element %d: %s\n", ui.RenderFail(ui.IconFail),
				failure.FailedElementNumber, strings.Join(failure.Messages, "; "))
		}
		fmt.Printf("\n%d succeeded, %d failed\n", len(result.Issues), len(result.Errors))
		if len(result.Issues) == 0 && len(result.Errors) > 0 {
			os.Exit(1)
		}
	},
}

var bulkDeleteCmd = &cobra.Command{
	Use:   "delete [key...]",
	Short: "Delete many issues",
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		keys := bulkKeys(cmd, args)

		if !yes {
			FatalErrorWithHint(fmt.Sprintf("refusing to delete %d issue(s) without --yes", len(keys)),
				"re-run with --yes to confirm")
		}

		runBulk(keys, func(key string) error {
			return client.DeleteIssue(rootCtx, key, false)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{bulkTransitionCmd, bulkAssignCmd,
		bulkPriorityCmd, bulkCloneCmd, bulkDeleteCmd} {
		cmd.Flags().String("jql", "", "Select target issues with a JQL query")
	}
	bulkCloneCmd.Flags().String("prefix", "", "Prefix for cloned summaries")
	bulkDeleteCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")

	bulkCmd.AddCommand(bulkTransitionCmd, bulkAssignCmd, bulkPriorityCmd,
		bulkCloneCmd, bulkCreateCmd, bulkDeleteCmd)
	rootCmd.AddCommand(bulkCmd)
}
