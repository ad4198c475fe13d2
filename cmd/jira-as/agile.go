package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/timeparsing"
	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var agileCmd = &cobra.Command{
	Use:     "agile",
	GroupID: "boards",
	Short:   "Boards, sprints, backlog, and epics",
}

func intArg(arg, what string) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		FatalError("invalid %s %q", what, arg)
	}
	return n
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "List and inspect boards",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards, optionally filtered by project",
	Run: func(_ *cobra.Command, _ []string) {
		boards, err := client.GetAllBoards(rootCtx, projectFlag)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(boards)
			return
		}
		for _, b := range boards {
			fmt.Printf("  %-5d %-24s %s\n", b.ID, b.Name, ui.RenderMuted(b.Type))
		}
	},
}

var boardGetCmd = &cobra.Command{
	Use:   "get <board-id>",
	Short: "Show one board",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		board, err := client.GetBoard(rootCtx, intArg(args[0], "board id"))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(board)
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(board.Name))
		fmt.Printf("  ID:   %d\n  Type: %s\n", board.ID, board.Type)
	},
}

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprints",
}

func printSprint(s *jira.Sprint) {
	fmt.Printf("  %-5d %-24s %-8s", s.ID, s.Name, ui.RenderStatus(s.State))
	if s.Goal != "" {
		fmt.Printf(" %s", ui.RenderMuted(s.Goal))
	}
	fmt.Println()
}

var sprintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a board's sprints",
	Run: func(cmd *cobra.Command, _ []string) {
		boardID, _ := cmd.Flags().GetInt("board")
		state, _ := cmd.Flags().GetString("state")
		if boardID == 0 {
			FatalErrorWithHint("no board given", "pass --board <id> (see: jira-as agile board list)")
		}

		sprints, err := client.GetBoardSprints(rootCtx, boardID, state)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(sprints)
			return
		}
		for i := range sprints {
			printSprint(&sprints[i])
		}
	},
}

var sprintGetCmd = &cobra.Command{
	Use:   "get <sprint-id>",
	Short: "Show one sprint",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		sprint, err := client.GetSprint(rootCtx, intArg(args[0], "sprint id"))
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(sprint)
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(sprint.Name))
		fmt.Printf("  State: %s\n", ui.RenderStatus(sprint.State))
		if sprint.Goal != "" {
			fmt.Printf("  Goal:  %s\n", sprint.Goal)
		}
		if sprint.StartDate != "" {
			fmt.Printf("  Start: %s\n", sprint.StartDate)
		}
		if sprint.CompleteDate != "" {
			fmt.Printf("  Done:  %s\n", sprint.CompleteDate)
		}
	},
}

var sprintCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a sprint on a board",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		boardID, _ := cmd.Flags().GetInt("board")
		goal, _ := cmd.Flags().GetString("goal")
		if boardID == 0 {
			FatalErrorWithHint("no board given", "pass --board <id>")
		}

		sprint, err := client.CreateSprint(rootCtx, boardID, args[0], goal)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(sprint)
			return
		}
		okf("Created sprint %d (%s)", sprint.ID, sprint.Name)
	},
}

// sprintSetState transitions a sprint via UpdateSprint.
func sprintSetState(sprintID int, state, verb string) {
	sprint, err := client.UpdateSprint(rootCtx, sprintID, map[string]any{"state": state})
	if err != nil {
		FatalAPIError(err)
	}
	if jsonOutput {
		outputJSON(sprint)
		return
	}
	okf("%s sprint %d (%s)", verb, sprint.ID, sprint.Name)
}

var sprintStartCmd = &cobra.Command{
	Use:   "start <sprint-id>",
	Short: "Start a future sprint",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		sprintSetState(intArg(args[0], "sprint id"), "active", "Started")
	},
}

var sprintCloseCmd = &cobra.Command{
	Use:   "close <sprint-id>",
	Short: "Close an active sprint",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		sprintSetState(intArg(args[0], "sprint id"), "closed", "Closed")
	},
}

var sprintUpdateCmd = &cobra.Command{
	Use:   "update <sprint-id>",
	Short: "Rename a sprint or change its goal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fields := map[string]any{}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			fields["name"] = name
		}
		if cmd.Flags().Changed("goal") {
			goal, _ := cmd.Flags().GetString("goal")
			fields["goal"] = goal
		}
		if len(fields) == 0 {
			FatalErrorWithHint("nothing to update", "pass --name or --goal")
		}

		sprint, err := client.UpdateSprint(rootCtx, intArg(args[0], "sprint id"), fields)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(sprint)
			return
		}
		okf("Updated sprint %d", sprint.ID)
	},
}

var sprintMoveCmd = &cobra.Command{
	Use:   "move <sprint-id> <key>...",
	Short: "Move issues into a sprint",
	Long: `Move issues into a sprint. An issue belongs to at most one sprint,
so moving it here removes it from any other sprint.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		sprintID := intArg(args[0], "sprint id")
		keys, err := validation.NormalizeIssueKeys(args[1:])
		if err != nil {
			FatalError("%v", err)
		}

		if err := client.MoveIssuesToSprint(rootCtx, sprintID, keys); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"sprint": sprintID, "moved": keys})
			return
		}
		okf("Moved %d issue(s) to sprint %d", len(keys), sprintID)
	},
}

var backlogCmd = &cobra.Command{
	Use:   "backlog",
	Short: "List a board's backlog (issues in no sprint)",
	Run: func(cmd *cobra.Command, _ []string) {
		boardID, _ := cmd.Flags().GetInt("board")
		if boardID == 0 {
			FatalErrorWithHint("no board given", "pass --board <id>")
		}

		issues, err := client.GetBacklogIssues(rootCtx, boardID)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(issues)
			return
		}
		printIssueList(issues)
	},
}

var epicCmd = &cobra.Command{
	Use:   "epic",
	Short: "Work with epics",
}

var epicIssuesCmd = &cobra.Command{
	Use:   "issues <epic-key>",
	Short: "List the issues in an epic",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		issues, err := client.GetEpicIssues(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(issues)
			return
		}
		printIssueList(issues)
	},
}

var epicAddCmd = &cobra.Command{
	Use:   "add <epic-key> <key>...",
	Short: "Add issues to an epic",
	Args:  cobra.MinimumNArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		epicKey := normalizeKeyArg(args[0])
		keys, err := validation.NormalizeIssueKeys(args[1:])
		if err != nil {
			FatalError("%v", err)
		}

		for _, key := range keys {
			if err := client.UpdateIssue(rootCtx, key, map[string]any{"customfield_10014": epicKey}); err != nil {
				FatalAPIError(err)
			}
		}
		if jsonOutput {
			outputJSON(map[string]any{"epic": epicKey, "added": keys})
			return
		}
		okf("Added %d issue(s) to %s", len(keys), epicKey)
	},
}

var epicRemoveCmd = &cobra.Command{
	Use:   "remove <key>...",
	Short: "Remove issues from their epic",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		keys, err := validation.NormalizeIssueKeys(args)
		if err != nil {
			FatalError("%v", err)
		}

		for _, key := range keys {
			if err := client.UpdateIssue(rootCtx, key, map[string]any{"customfield_10014": nil}); err != nil {
				FatalAPIError(err)
			}
		}
		if jsonOutput {
			outputJSON(map[string]any{"removed": keys})
			return
		}
		okf("Removed %d issue(s) from their epic", len(keys))
	},
}

var estimateCmd = &cobra.Command{
	Use:   "estimate <key> <duration>",
	Short: "Set an issue's original estimate (work durations: 1w = 5d, 1d = 8h)",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		if _, err := timeparsing.ParseWorkDuration(args[1]); err != nil {
			FatalErrorWithHint(fmt.Sprintf("%v", err), `durations look like "2h", "1d 4h", "1w"`)
		}

		fields := map[string]any{
			"timetracking": map[string]any{"originalEstimate": args[1]},
		}
		if err := client.UpdateIssue(rootCtx, key, fields); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"key": key, "originalEstimate": args[1]})
			return
		}
		okf("Estimated %s at %s", key, args[1])
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank <key>... (--before <key> | --after <key>)",
	Short: "Rank issues relative to another issue",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		before, _ := cmd.Flags().GetString("before")
		after, _ := cmd.Flags().GetString("after")
		if (before == "") == (after == "") {
			FatalErrorWithHint("need exactly one anchor", "pass --before <key> or --after <key>")
		}

		keys, err := validation.NormalizeIssueKeys(args)
		if err != nil {
			FatalError("%v", err)
		}
		if before != "" {
			before = normalizeKeyArg(before)
		}
		if after != "" {
			after = normalizeKeyArg(after)
		}

		if err := client.RankIssues(rootCtx, keys, before, after); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"ranked": keys, "before": before, "after": after})
			return
		}
		okf("Ranked %d issue(s)", len(keys))
	},
}

var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Summarize completed work for a board's recent closed sprints",
	Run: func(cmd *cobra.Command, _ []string) {
		boardID, _ := cmd.Flags().GetInt("board")
		count, _ := cmd.Flags().GetInt("sprints")
		if boardID == 0 {
			FatalErrorWithHint("no board given", "pass --board <id>")
		}

		sprints, err := client.GetBoardSprints(rootCtx, boardID, "closed")
		if err != nil {
			FatalAPIError(err)
		}
		if len(sprints) > count {
			sprints = sprints[len(sprints)-count:]
		}

		type sprintVelocity struct {
			Sprint    jira.Sprint `json:"sprint"`
			Total     int         `json:"total"`
			Completed int         `json:"completed"`
		}
		report := make([]sprintVelocity, 0, len(sprints))
		for _, s := range sprints {
			issues, err := client.SearchAll(rootCtx, fmt.Sprintf("sprint = %d", s.ID), []string{"status"})
			if err != nil {
				FatalAPIError(err)
			}
			v := sprintVelocity{Sprint: s, Total: len(issues)}
			for _, issue := range issues {
				if issue.Fields.Status != nil && issue.Fields.Status.StatusCategory != nil &&
					issue.Fields.Status.StatusCategory.Key == "done" {
					v.Completed++
				}
			}
			report = append(report, v)
		}

		if jsonOutput {
			outputJSON(report)
			return
		}
		if len(report) == 0 {
			fmt.Println(ui.RenderMuted("No closed sprints"))
			return
		}
		for _, v := range report {
			fmt.Printf("  %-24s %d/%d done\n", v.Sprint.Name, v.Completed, v.Total)
		}
	},
}

func init() {
	sprintListCmd.Flags().IntP("board", "b", 0, "Board id")
	sprintListCmd.Flags().String("state", "", "Filter by state (future, active, closed)")
	sprintCreateCmd.Flags().IntP("board", "b", 0, "Board id")
	sprintCreateCmd.Flags().String("goal", "", "Sprint goal")
	sprintUpdateCmd.Flags().String("name", "", "New name")
	sprintUpdateCmd.Flags().String("goal", "", "New goal")
	backlogCmd.Flags().IntP("board", "b", 0, "Board id")
	rankCmd.Flags().String("before", "", "Rank above this issue")
	rankCmd.Flags().String("after", "", "Rank below this issue")
	velocityCmd.Flags().IntP("board", "b", 0, "Board id")
	velocityCmd.Flags().Int("sprints", 5, "Number of recent closed sprints")

	boardCmd.AddCommand(boardListCmd, boardGetCmd)
	sprintCmd.AddCommand(sprintListCmd, sprintGetCmd, sprintCreateCmd,
		sprintStartCmd, sprintCloseCmd, sprintUpdateCmd, sprintMoveCmd)
	epicCmd.AddCommand(epicIssuesCmd, epicAddCmd, epicRemoveCmd)
	agileCmd.AddCommand(boardCmd, sprintCmd, epicCmd)
	agileCmd.AddCommand(backlogCmd, estimateCmd, rankCmd, velocityCmd)
	rootCmd.AddCommand(agileCmd)
}
