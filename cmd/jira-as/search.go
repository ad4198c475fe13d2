package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/jql"
	"github.com/jira-assistant/jira-as/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:     "search",
	GroupID: "issues",
	Short:   "Search issues with JQL",
}

var searchQueryCmd = &cobra.Command{
	Use:   "query <jql>",
	Short: "Run a JQL query",
	Long: `Run a JQL query and print the matching issues.

Examples:
  jira-as search query 'project = DEMO AND status = "In Progress"'
  jira-as search query 'assignee = currentUser()' --limit 10
  jira-as search query 'project = DEMO' --all`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := args[0]
		limit, _ := cmd.Flags().GetInt("limit")
		startAt, _ := cmd.Flags().GetInt("start-at")
		all, _ := cmd.Flags().GetBool("all")
		fields, _ := cmd.Flags().GetStringSlice("fields")

		if all {
			issues, err := client.SearchAll(rootCtx, query, fields)
			if err != nil {
				FatalAPIError(err)
			}
			if jsonOutput {
				outputJSON(issues)
				return
			}
			printIssueList(issues)
			fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("%d issues", len(issues))))
			return
		}

		result, err := client.SearchIssues(rootCtx, query, &jira.SearchOptions{
			StartAt:    startAt,
			MaxResults: limit,
			Fields:     fields,
		})
		if err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(result)
			return
		}
		printIssueList(result.Issues)
		if result.Total > len(result.Issues) {
			fmt.Printf("\n%s\n", ui.RenderMuted(fmt.Sprintf("showing %d of %d (use --start-at %d for the next page)",
				len(result.Issues), result.Total, result.StartAt+len(result.Issues))))
		}
	},
}

var searchValidateCmd = &cobra.Command{
	Use:   "validate <jql>",
	Short: "Check a JQL query for common mistakes without running it",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		problems := jql.Lint(args[0])

		if jsonOutput {
			outputJSON(map[string]any{"valid": len(problems) == 0, "problems": problems})
			if len(problems) > 0 {
				os.Exit(1)
			}
			return
		}
		if len(problems) == 0 {
			okf("Query looks valid")
			return
		}
		for _, p := range problems {
			fmt.Printf("%s %s\n", ui.RenderFail(ui.IconFail), p)
		}
		os.Exit(1)
	},
}

var searchBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a JQL query from flags",
	Long: `Build a JQL query from flags and print it. Combine with query:

  jira-as search query "$(jira-as search build -p DEMO --status 'In Progress')"`,
	Run: func(cmd *cobra.Command, _ []string) {
		issueType, _ := cmd.Flags().GetString("type")
		status, _ := cmd.Flags().GetString("status")
		assignee, _ := cmd.Flags().GetString("assignee")
		reporter, _ := cmd.Flags().GetString("reporter")
		labels, _ := cmd.Flags().GetStringSlice("labels")
		text, _ := cmd.Flags().GetString("text")
		extra, _ := cmd.Flags().GetString("jql")
		orderBy, _ := cmd.Flags().GetString("order-by")
		desc, _ := cmd.Flags().GetBool("desc")
		mine, _ := cmd.Flags().GetBool("mine")

		if mine {
			assignee = "currentUser()"
		}

		query := jql.Build(jql.Params{
			Project:   projectFlag,
			IssueType: issueType,
			Status:    status,
			Assignee:  assignee,
			Reporter:  reporter,
			Labels:    labels,
			Text:      text,
			Extra:     extra,
			OrderBy:   orderBy,
			Desc:      desc,
		})

		if jsonOutput {
			outputJSON(map[string]string{"jql": query})
			return
		}
		fmt.Println(query)
	},
}

var searchFieldsCmd = &cobra.Command{
	Use:   "fields [name-filter]",
	Short: "List searchable fields",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		fields, err := client.GetFields(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}

		if len(args) == 1 {
			needle := strings.ToLower(args[0])
			filtered := fields[:0]
			for _, f := range fields {
				if strings.Contains(strings.ToLower(f.Name), needle) ||
					strings.Contains(strings.ToLower(f.ID), needle) {
					filtered = append(filtered, f)
				}
			}
			fields = filtered
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

		if jsonOutput {
			outputJSON(fields)
			return
		}
		for _, f := range fields {
			kind := "system"
			if f.Custom {
				kind = "custom"
			}
			fmt.Printf("  %-28s %-8s %s\n", f.Name, ui.RenderMuted(kind), f.ID)
		}
	},
}

// jqlFunctions is the reference list printed by search functions. These are
// client-side documentation, not fetched from the server.
var jqlFunctions = []struct{ name, desc string }{
	{"currentUser()", "the authenticated user"},
	{"startOfDay()", "00:00 today; accepts an offset like startOfDay(-1d)"},
	{"endOfDay()", "23:59 today"},
	{"startOfWeek()", "start of the current week"},
	{"endOfWeek()", "end of the current week"},
	{"startOfMonth()", "first day of the current month"},
	{"endOfMonth()", "last day of the current month"},
	{"now()", "the current time"},
	{"membersOf(\"group\")", "users in a group"},
	{"openSprints()", "issues in any active sprint"},
	{"closedSprints()", "issues in completed sprints"},
	{"futureSprints()", "issues in sprints not yet started"},
	{"linkedIssues(\"KEY\")", "issues linked to the given issue"},
	{"updatedBy(\"user\")", "issues last updated by a user"},
}

var searchFunctionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List common JQL functions",
	Run: func(_ *cobra.Command, _ []string) {
		if jsonOutput {
			out := make([]map[string]string, len(jqlFunctions))
			for i, f := range jqlFunctions {
				out[i] = map[string]string{"name": f.name, "description": f.desc}
			}
			outputJSON(out)
			return
		}
		for _, f := range jqlFunctions {
			fmt.Printf("  %-24s %s\n", ui.AccentStyle.Render(f.name), f.desc)
		}
	},
}

var searchFilterCmd = &cobra.Command{
	Use:   "filter [filter-id]",
	Short: "List saved filters, or run one by id",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			filters, err := client.GetFilters(rootCtx)
			if err != nil {
				FatalAPIError(err)
			}
			if jsonOutput {
				outputJSON(filters)
				return
			}
			for _, f := range filters {
				fmt.Printf("  %-6s %-24s %s\n", f.ID, f.Name, ui.RenderMuted(f.JQL))
			}
			return
		}

		filter, err := client.GetFilter(rootCtx, args[0])
		if err != nil {
			FatalAPIError(err)
		}
		limit, _ := cmd.Flags().GetInt("limit")
		result, err := client.SearchIssues(rootCtx, filter.JQL, &jira.SearchOptions{MaxResults: limit})
		if err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(map[string]any{"filter": filter, "result": result})
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(filter.Name))
		fmt.Printf("%s\n\n", ui.RenderMuted(filter.JQL))
		printIssueList(result.Issues)
	},
}

var searchFilterCreateCmd = &cobra.Command{
	Use:   "filter-create <name> <jql>",
	Short: "Save a query as a filter",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		description, _ := cmd.Flags().GetString("description")
		if problems := jql.Lint(args[1]); len(problems) > 0 {
			FatalErrorWithHint("query has problems: "+strings.Join(problems, "; "),
				"fix the query or check it with: jira-as search validate")
		}

		filter, err := client.CreateFilter(rootCtx, args[0], args[1], description)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(filter)
			return
		}
		okf("Created filter %s (%s)", filter.ID, filter.Name)
	},
}

var searchFilterDeleteCmd = &cobra.Command{
	Use:   "filter-delete <filter-id>",
	Short: "Delete a saved filter",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := client.DeleteFilter(rootCtx, args[0]); err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"filter": args[0], "deleted": true})
			return
		}
		okf("Deleted filter %s", args[0])
	},
}

var searchSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print example queries for common workflows",
	Run: func(_ *cobra.Command, _ []string) {
		project := projectFlag
		if project == "" {
			project = "PROJ"
		}
		suggestions := []struct{ title, query string }{
			{"My open issues", `assignee = currentUser() AND statusCategory != Done ORDER BY updated DESC`},
			{"Unassigned in project", fmt.Sprintf(`project = %s AND assignee IS EMPTY AND statusCategory != Done`, project)},
			{"Updated today", fmt.Sprintf(`project = %s AND updated >= startOfDay()`, project)},
			{"High priority open bugs", fmt.Sprintf(`project = %s AND issuetype = Bug AND priority IN (Highest, High) AND statusCategory != Done`, project)},
			{"Stale in progress", fmt.Sprintf(`project = %s AND status = "In Progress" AND updated <= -7d`, project)},
			{"Done this week", fmt.Sprintf(`project = %s AND statusCategory = Done AND resolved >= startOfWeek()`, project)},
		}

		if jsonOutput {
			out := make([]map[string]string, len(suggestions))
			for i, s := range suggestions {
				out[i] = map[string]string{"title": s.title, "jql": s.query}
			}
			outputJSON(out)
			return
		}
		for _, s := range suggestions {
			fmt.Printf("%s\n  %s\n\n", ui.CategoryStyle.Render(s.title), s.query)
		}
	},
}

func init() {
	searchQueryCmd.Flags().Int("limit", 50, "Maximum results per page")
	searchQueryCmd.Flags().Int("start-at", 0, "Pagination offset")
	searchQueryCmd.Flags().Bool("all", false, "Fetch every page")
	searchQueryCmd.Flags().StringSlice("fields", nil, "Fields to request")

	searchBuildCmd.Flags().StringP("type", "t", "", "Issue type")
	searchBuildCmd.Flags().StringP("status", "s", "", "Status name")
	searchBuildCmd.Flags().StringP("assignee", "a", "", "Assignee")
	searchBuildCmd.Flags().StringP("reporter", "r", "", "Reporter")
	searchBuildCmd.Flags().StringSliceP("labels", "l", nil, "Labels (one clause each)")
	searchBuildCmd.Flags().String("text", "", "Free text match")
	searchBuildCmd.Flags().String("jql", "", "Extra raw JQL appended to the query")
	searchBuildCmd.Flags().String("order-by", "", "ORDER BY field")
	searchBuildCmd.Flags().Bool("desc", false, "Order descending")
	searchBuildCmd.Flags().Bool("mine", false, "Shorthand for --assignee 'currentUser()'")

	searchFilterCmd.Flags().Int("limit", 50, "Maximum results when running a filter")
	searchFilterCreateCmd.Flags().StringP("description", "d", "", "Filter description")

	searchCmd.AddCommand(searchQueryCmd, searchValidateCmd, searchBuildCmd,
		searchFieldsCmd, searchFunctionsCmd, searchFilterCmd,
		searchFilterCreateCmd, searchFilterDeleteCmd, searchSuggestCmd)
	rootCmd.AddCommand(searchCmd)
}
