package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var issueCmd = &cobra.Command{
	Use:     "issue",
	GroupID: "issues",
	Short:   "Create, read, update, and delete issues",
}

// normalizeKeyArg validates and upper-cases an issue key argument, exiting
// on bad input.
func normalizeKeyArg(arg string) string {
	key, err := validation.NormalizeIssueKey(arg)
	if err != nil {
		FatalError("%v", err)
	}
	return key
}

var issueGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show an issue",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		fields, _ := cmd.Flags().GetStringSlice("fields")

		issue, err := client.GetIssue(rootCtx, key, fields)
		if err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(issue)
			return
		}
		printIssueDetail(issue)
	},
}

var issueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an issue",
	Long: `Create an issue in the current project.

Examples:
  jira-as issue create -p DEMO --summary "Fix login" --type Bug
  jira-as issue create --interactive`,
	Run: func(cmd *cobra.Command, _ []string) {
		summary, _ := cmd.Flags().GetString("summary")
		issueType, _ := cmd.Flags().GetString("type")
		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		assignee, _ := cmd.Flags().GetString("assignee")
		labels, _ := cmd.Flags().GetStringSlice("labels")
		epicKey, _ := cmd.Flags().GetString("epic")
		interactive, _ := cmd.Flags().GetBool("interactive")

		if interactive {
			if err := runCreateForm(&summary, &issueType, &description, &priority); err != nil {
				FatalError("%v", err)
			}
		}
		if summary == "" {
			FatalErrorWithHint("summary is required", "pass --summary or use --interactive")
		}

		project, err := validation.NormalizeProjectKey(requireProject())
		if err != nil {
			FatalError("%v", err)
		}

		fields := map[string]any{
			"project":   map[string]any{"key": project},
			"summary":   summary,
			"issuetype": map[string]any{"name": issueType},
		}
		if description != "" {
			fields["description"] = jira.TextToADF(description)
		}
		if priority != "" {
			fields["priority"] = map[string]any{"name": priority}
		}
		if assignee != "" {
			fields["assignee"] = map[string]any{"accountId": assignee}
		}
		if len(labels) > 0 {
			fields["labels"] = labels
		}
		if epicKey != "" {
			fields["customfield_10014"] = normalizeKeyArg(epicKey)
		}

		created, err := client.CreateIssue(rootCtx, fields)
		if err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(created)
			return
		}
		okf("Created %s", ui.AccentStyle.Render(created.Key))
	},
}

// runCreateForm collects create fields interactively.
func runCreateForm(summary, issueType, description, priority *string) error {
	if *issueType == "" || *issueType == "Task" {
		*issueType = "Task"
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Summary").
				Value(summary).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("summary is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(huh.NewOptions("Task", "Bug", "Story", "Epic")...).
				Value(issueType),
			huh.NewSelect[string]().
				Title("Priority").
				Options(huh.NewOptions("", "Highest", "High", "Medium", "Low", "Lowest")...).
				Value(priority),
			huh.NewText().
				Title("Description").
				Value(description),
		),
	)
	return form.Run()
}

var issueUpdateCmd = &cobra.Command{
	Use:   "update <key>",
	Short: "Update issue fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])

		fields := map[string]any{}
		if cmd.Flags().Changed("summary") {
			summary, _ := cmd.Flags().GetString("summary")
			fields["summary"] = summary
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			fields["description"] = jira.TextToADF(description)
		}
		if cmd.Flags().Changed("priority") {
			priority, _ := cmd.Flags().GetString("priority")
			fields["priority"] = map[string]any{"name": priority}
		}
		if cmd.Flags().Changed("labels") {
			labels, _ := cmd.Flags().GetStringSlice("labels")
			fields["labels"] = labels
		}
		if cmd.Flags().Changed("epic") {
			epicKey, _ := cmd.Flags().GetString("epic")
			if epicKey == "" {
				fields["customfield_10014"] = nil
			} else {
				fields["customfield_10014"] = normalizeKeyArg(epicKey)
			}
		}
		if len(fields) == 0 {
			FatalErrorWithHint("nothing to update", "pass at least one of --summary, --description, --priority, --labels, --epic")
		}

		if err := client.UpdateIssue(rootCtx, key, fields); err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(map[string]any{"key": key, "updated": true})
			return
		}
		okf("Updated %s", key)
	},
}

var issueDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an issue",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		deleteSubtasks, _ := cmd.Flags().GetBool("subtasks")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes && !jsonOutput {
			var confirmed bool
			prompt := huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", key)).
				Description("This cannot be undone.").
				Value(&confirmed)
			if err := prompt.Run(); err != nil {
				FatalError("%v", err)
			}
			if !confirmed {
				fmt.Println(ui.RenderMuted("Aborted"))
				return
			}
		}

		if err := client.DeleteIssue(rootCtx, key, deleteSubtasks); err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(map[string]any{"key": key, "deleted": true})
			return
		}
		okf("Deleted %s", key)
	},
}

var issueAssignCmd = &cobra.Command{
	Use:   "assign <key> [account-id]",
	Short: "Assign an issue (no account id with --unassign to clear)",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		me, _ := cmd.Flags().GetBool("me")
		unassign, _ := cmd.Flags().GetBool("unassign")

		var accountID string
		switch {
		case unassign:
		case me:
			current, err := client.GetCurrentUser(rootCtx)
			if err != nil {
				FatalAPIError(err)
			}
			accountID = current.AccountID
		case len(args) == 2:
			accountID = args[1]
			if err := validation.ValidateAccountID(accountID); err != nil {
				FatalError("%v", err)
			}
		default:
			FatalErrorWithHint("no assignee given", "pass an account id, --me, or --unassign")
		}

		if err := client.AssignIssue(rootCtx, key, accountID); err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(map[string]any{"key": key, "assignee": accountID})
			return
		}
		if accountID == "" {
			okf("Unassigned %s", key)
		} else {
			okf("Assigned %s to %s", key, accountID)
		}
	},
}

var issueTransitionCmd = &cobra.Command{
	Use:   "transition <key> [name]",
	Short: "Transition an issue (omit the name to list available transitions)",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])

		transitions, err := client.GetTransitions(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}

		if len(args) == 1 {
			if jsonOutput {
				outputJSON(transitions)
				return
			}
			fmt.Printf("%s\n", ui.RenderHeader("Available transitions for "+key))
			for _, t := range transitions {
				fmt.Printf("  %-4s %-16s -> %s\n", t.ID, t.Name, ui.RenderStatus(t.To.Name))
			}
			return
		}

		target := args[1]
		var match *jira.Transition
		for i := range transitions {
			if strings.EqualFold(transitions[i].Name, target) ||
				strings.EqualFold(transitions[i].To.Name, target) ||
				transitions[i].ID == target {
				match = &transitions[i]
				break
			}
		}
		if match == nil {
			names := make([]string, len(transitions))
			for i, t := range transitions {
				names[i] = t.Name
			}
			FatalErrorWithHint(fmt.Sprintf("no transition %q on %s", target, key),
				"available: "+strings.Join(names, ", "))
		}

		if err := client.TransitionIssue(rootCtx, key, match.ID, nil); err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(map[string]any{"key": key, "status": match.To.Name})
			return
		}
		okf("%s -> %s", key, ui.RenderStatus(match.To.Name))
	},
}

func init() {
	issueGetCmd.Flags().StringSlice("fields", nil, "Fields to request (default: common fields)")

	issueCreateCmd.Flags().String("summary", "", "Issue summary")
	issueCreateCmd.Flags().StringP("type", "t", "Task", "Issue type (Task, Bug, Story, Epic)")
	issueCreateCmd.Flags().StringP("description", "d", "", "Description (plain text)")
	issueCreateCmd.Flags().String("priority", "", "Priority name")
	issueCreateCmd.Flags().StringP("assignee", "a", "", "Assignee account id")
	issueCreateCmd.Flags().StringSliceP("labels", "l", nil, "Labels")
	issueCreateCmd.Flags().String("epic", "", "Epic issue key to link under")
	issueCreateCmd.Flags().BoolP("interactive", "i", false, "Fill in fields interactively")

	issueUpdateCmd.Flags().String("summary", "", "New summary")
	issueUpdateCmd.Flags().StringP("description", "d", "", "New description (plain text)")
	issueUpdateCmd.Flags().String("priority", "", "New priority name")
	issueUpdateCmd.Flags().StringSliceP("labels", "l", nil, "Replacement label set")
	issueUpdateCmd.Flags().String("epic", "", "Epic issue key (empty clears the epic link)")

	issueDeleteCmd.Flags().Bool("subtasks", false, "Delete subtasks too")
	issueDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	issueAssignCmd.Flags().Bool("me", false, "Assign to the authenticated user")
	issueAssignCmd.Flags().Bool("unassign", false, "Clear the assignee")

	issueCmd.AddCommand(issueGetCmd, issueCreateCmd, issueUpdateCmd, issueDeleteCmd,
		issueAssignCmd, issueTransitionCmd)
	rootCmd.AddCommand(issueCmd)
}
