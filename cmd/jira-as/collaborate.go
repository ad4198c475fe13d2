package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/ui"
)

var commentCmd = &cobra.Command{
	Use:     "comment",
	GroupID: "issues",
	Short:   "Manage issue comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <key> <text>",
	Short: "Add a comment",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		comment, err := client.AddComment(rootCtx, key, jira.TextToADF(args[1]))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(comment)
			return
		}
		okf("Added comment %s to %s", comment.ID, key)
	},
}

var commentListCmd = &cobra.Command{
	Use:   "list <key>",
	Short: "List an issue's comments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		limit, _ := cmd.Flags().GetInt("limit")

		page, err := client.GetComments(rootCtx, key, 0, limit)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(page)
			return
		}
		for _, c := range page.Comments {
			author := ""
			if c.Author != nil {
				author = c.Author.DisplayName
			}
			fmt.Printf("%s %s %s\n", ui.AccentStyle.Render(c.ID),
				ui.CategoryStyle.Render(author), ui.RenderMuted(c.Created))
			fmt.Printf("  %s\n", jira.ADFToText(c.Body))
		}
		if page.Total > len(page.Comments) {
			fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("showing %d of %d", len(page.Comments), page.Total)))
		}
	},
}

var commentUpdateCmd = &cobra.Command{
	Use:   "update <key> <comment-id> <text>",
	Short: "Replace a comment's body",
	Args:  cobra.ExactArgs(3),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		comment, err := client.UpdateComment(rootCtx, key, args[1], jira.TextToADF(args[2]))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(comment)
			return
		}
		okf("Updated comment %s on %s", comment.ID, key)
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <key> <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		if err := client.DeleteComment(rootCtx, key, args[1]); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"key": key, "comment": args[1], "deleted": true})
			return
		}
		okf("Deleted comment %s from %s", args[1], key)
	},
}

var watcherCmd = &cobra.Command{
	Use:     "watcher",
	GroupID: "issues",
	Short:   "Manage issue watchers",
}

var watcherListCmd = &cobra.Command{
	Use:   "list <key>",
	Short: "List an issue's watchers",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		watchers, err := client.GetWatchers(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(watchers)
			return
		}
		for _, w := range watchers {
			fmt.Printf("  %-40s %s\n", w.AccountID, w.DisplayName)
		}
	},
}

var watcherAddCmd = &cobra.Command{
	Use:   "add <key> [account-id]",
	Short: "Watch an issue (defaults to the authenticated user)",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		accountID := watcherAccount(args)

		if err := client.AddWatcher(rootCtx, key, accountID); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]string{"key": key, "watcher": accountID})
			return
		}
		okf("%s is watching %s", accountID, key)
	},
}

var watcherRemoveCmd = &cobra.Command{
	Use:   "remove <key> [account-id]",
	Short: "Stop watching an issue",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		accountID := watcherAccount(args)

		if err := client.RemoveWatcher(rootCtx, key, accountID); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"key": key, "watcher": accountID, "removed": true})
			return
		}
		okf("%s stopped watching %s", accountID, key)
	},
}

func watcherAccount(args []string) string {
	if len(args) == 2 {
		return args[1]
	}
	current, err := client.GetCurrentUser(rootCtx)
	if err != nil {
		FatalAPIError(err)
	}
	return current.AccountID
}

var attachmentsCmd = &cobra.Command{
	Use:     "attachments <key>",
	GroupID: "issues",
	Short:   "List an issue's attachments",
	Args:    cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		issue, err := client.GetIssue(rootCtx, key, []string{"attachment"})
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(issue.Fields.Attachments)
			return
		}
		if len(issue.Fields.Attachments) == 0 {
			fmt.Println(ui.RenderMuted("No attachments"))
			return
		}
		for _, a := range issue.Fields.Attachments {
			fmt.Printf("  %-6s %-32s %8d  %s\n", a.ID, a.Filename, a.Size, ui.RenderMuted(a.MimeType))
		}
	},
}

var activityCmd = &cobra.Command{
	Use:     "activity <key>",
	GroupID: "issues",
	Short:   "Show recent activity on an issue (comments and worklogs)",
	Args:    cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])

		comments, err := client.GetComments(rootCtx, key, 0, 20)
		if err != nil {
			FatalAPIError(err)
		}
		worklogs, err := client.GetWorklogs(rootCtx, key, 0, 20)
		if err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(map[string]any{
				"key":      key,
				"comments": comments.Comments,
				"worklogs": worklogs.Worklogs,
			})
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader("Activity on "+key))
		for _, c := range comments.Comments {
			author := ""
			if c.Author != nil {
				author = c.Author.DisplayName
			}
			fmt.Printf("  %s commented %s\n", ui.CategoryStyle.Render(author), ui.RenderMuted(c.Created))
		}
		for _, w := range worklogs.Worklogs {
			author := ""
			if w.Author != nil {
				author = w.Author.DisplayName
			}
			fmt.Printf("  %s logged %s %s\n", ui.CategoryStyle.Render(author),
				w.TimeSpent, ui.RenderMuted(w.Started))
		}
	},
}

var notifyCmd = &cobra.Command{
	Use:     "notify <key>",
	GroupID: "issues",
	Short:   "Send an issue notification to its watchers",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		subject, _ := cmd.Flags().GetString("subject")
		body, _ := cmd.Flags().GetString("body")
		if subject == "" {
			FatalErrorWithHint("no subject given", "pass --subject")
		}

		if err := client.NotifyIssue(rootCtx, key, subject, body); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"key": key, "notified": true})
			return
		}
		okf("Notified watchers of %s", key)
	},
}

func init() {
	commentListCmd.Flags().Int("limit", 50, "Maximum comments to show")
	notifyCmd.Flags().String("subject", "", "Notification subject")
	notifyCmd.Flags().String("body", "", "Notification body")

	commentCmd.AddCommand(commentAddCmd, commentListCmd, commentUpdateCmd, commentDeleteCmd)
	watcherCmd.AddCommand(watcherListCmd, watcherAddCmd, watcherRemoveCmd)
	rootCmd.AddCommand(commentCmd, watcherCmd, attachmentsCmd, activityCmd, notifyCmd)
}
