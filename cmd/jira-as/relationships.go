package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var linkCmd = &cobra.Command{
	Use:     "link",
	GroupID: "issues",
	Short:   "Link issues together",
}

var linkAddCmd = &cobra.Command{
	Use:   "add <inward-key> <type> <outward-key>",
	Short: `Link two issues ("DEMO-86 Blocks DEMO-85")`,
	Args:  cobra.ExactArgs(3),
	Run: func(_ *cobra.Command, args []string) {
		inward := normalizeKeyArg(args[0])
		linkType := args[1]
		outward := normalizeKeyArg(args[2])

		if err := client.LinkIssues(rootCtx, inward, outward, linkType); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]string{"inward": inward, "type": linkType, "outward": outward})
			return
		}
		okf("%s %s %s", inward, linkType, outward)
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:   "remove <link-id>",
	Short: "Remove a link by id (see: link list)",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := client.DeleteLink(rootCtx, args[0]); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"link": args[0], "deleted": true})
			return
		}
		okf("Removed link %s", args[0])
	},
}

// issueLinksOf fetches an issue's links.
func issueLinksOf(key string) []jira.IssueLink {
	issue, err := client.GetIssue(rootCtx, key, []string{"summary", "issuelinks"})
	if err != nil {
		FatalAPIError(err)
	}
	return issue.Fields.IssueLinks
}

// describeLink renders one link from the perspective of the issue it was
// fetched from.
func describeLink(link jira.IssueLink) (direction, other string) {
	if link.OutwardIssue != nil {
		return link.Type.Outward, link.OutwardIssue.Key
	}
	if link.InwardIssue != nil {
		return link.Type.Inward, link.InwardIssue.Key
	}
	return link.Type.Name, "?"
}

var linkListCmd = &cobra.Command{
	Use:   "list <key>",
	Short: "List an issue's links",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		links := issueLinksOf(key)

		if jsonOutput {
			outputJSON(links)
			return
		}
		if len(links) == 0 {
			fmt.Println(ui.RenderMuted("No links"))
			return
		}
		for _, link := range links {
			direction, other := describeLink(link)
			fmt.Printf("  %-6s %-14s %s\n", link.ID, direction, ui.AccentStyle.Render(other))
		}
	},
}

var linkTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List available link types",
	Run: func(_ *cobra.Command, _ []string) {
		types, err := client.GetLinkTypes(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(types)
			return
		}
		for _, t := range types {
			fmt.Printf("  %-12s %s / %s\n", t.Name, t.Outward, ui.RenderMuted(t.Inward))
		}
	},
}

var blockersCmd = &cobra.Command{
	Use:     "blockers <key>",
	GroupID: "issues",
	Short:   "List issues blocking the given issue",
	Args:    cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])

		var blockers []jira.Issue
		for _, link := range issueLinksOf(key) {
			if link.Type.Name == "Blocks" && link.InwardIssue != nil {
				blockers = append(blockers, *link.InwardIssue)
			}
		}

		if jsonOutput {
			outputJSON(blockers)
			return
		}
		if len(blockers) == 0 {
			okf("%s is not blocked", key)
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(fmt.Sprintf("%s is blocked by %d issue(s)", key, len(blockers))))
		printIssueList(blockers)
	},
}

var dependenciesCmd = &cobra.Command{
	Use:     "dependencies <key>",
	GroupID: "issues",
	Short:   "List issues the given issue blocks",
	Args:    cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])

		var dependents []jira.Issue
		for _, link := range issueLinksOf(key) {
			if link.Type.Name == "Blocks" && link.OutwardIssue != nil {
				dependents = append(dependents, *link.OutwardIssue)
			}
		}

		if jsonOutput {
			outputJSON(dependents)
			return
		}
		if len(dependents) == 0 {
			okf("Nothing depends on %s", key)
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(fmt.Sprintf("%s blocks %d issue(s)", key, len(dependents))))
		printIssueList(dependents)
	},
}

var cloneCmd = &cobra.Command{
	Use:     "clone <key>",
	GroupID: "issues",
	Short:   "Clone an issue, linking the copy to the original",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])
		prefix, _ := cmd.Flags().GetString("prefix")
		noLink, _ := cmd.Flags().GetBool("no-link")

		source, err := client.GetIssue(rootCtx, key, nil)
		if err != nil {
			FatalAPIError(err)
		}
		created, err := client.CreateIssue(rootCtx, cloneFields(source, prefix))
		if err != nil {
			FatalAPIError(err)
		}
		if !noLink {
			if err := client.LinkIssues(rootCtx, created.Key, key, "Cloners"); err != nil {
				WarnError("linking clone: %v", err)
			}
		}

		if jsonOutput {
			outputJSON(map[string]string{"source": key, "clone": created.Key})
			return
		}
		okf("Cloned %s to %s", key, ui.AccentStyle.Render(created.Key))
	},
}

var bulkLinkCmd = &cobra.Command{
	Use:   "bulk-link <type> <inward-key> <outward-key>...",
	Short: "Link one issue to several others",
	Args:  cobra.MinimumNArgs(3),
	Run: func(_ *cobra.Command, args []string) {
		linkType := args[0]
		inward := normalizeKeyArg(args[1])
		outwards, err := validation.NormalizeIssueKeys(args[2:])
		if err != nil {
			FatalError("%v", err)
		}

		runBulk(outwards, func(outward string) error {
			return client.LinkIssues(rootCtx, inward, outward, linkType)
		})
	},
}

var linkStatsCmd = &cobra.Command{
	Use:   "stats <jql>",
	Short: "Count link types across the issues matching a query",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		issues, err := client.SearchAll(rootCtx, args[0], []string{"issuelinks"})
		if err != nil {
			FatalAPIError(err)
		}

		counts := map[string]int{}
		linked := 0
		for _, issue := range issues {
			if len(issue.Fields.IssueLinks) > 0 {
				linked++
			}
			for _, link := range issue.Fields.IssueLinks {
				counts[link.Type.Name]++
			}
		}

		if jsonOutput {
			outputJSON(map[string]any{
				"issues": len(issues),
				"linked": linked,
				"byType": counts,
			})
			return
		}
		fmt.Printf("  %d of %d issue(s) have links\n\n", linked, len(issues))
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-14s %d\n", name, counts[name])
		}
	},
}

func init() {
	cloneCmd.Flags().String("prefix", "CLONE - ", "Prefix for the clone's summary")
	cloneCmd.Flags().Bool("no-link", false, "Skip the Cloners link back to the original")

	linkCmd.AddCommand(linkAddCmd, linkRemoveCmd, linkListCmd, linkTypesCmd,
		bulkLinkCmd, linkStatsCmd)
	rootCmd.AddCommand(linkCmd, blockersCmd, dependenciesCmd, cloneCmd)
}
