package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var adminCmd = &cobra.Command{
	Use:     "admin",
	GroupID: "advanced",
	Short:   "Projects, users, groups, and workflow metadata",
}

var adminProjectCmd = &cobra.Command{
	Use:   "project [key]",
	Short: "List projects, or show one project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 0 {
			projects, err := client.GetProjects(rootCtx)
			if err != nil {
				FatalAPIError(err)
			}
			if jsonOutput {
				outputJSON(projects)
				return
			}
			for _, p := range projects {
				fmt.Printf("  %-10s %-28s %s\n", p.Key, p.Name, ui.RenderMuted(p.ProjectTypeKey))
			}
			return
		}

		key, err := validation.NormalizeProjectKey(args[0])
		if err != nil {
			FatalError("%v", err)
		}
		project, err := client.GetProject(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(project)
			return
		}
		fmt.Printf("%s\n", ui.RenderHeader(project.Key+"  "+project.Name))
		fmt.Printf("  ID:    %s\n  Type:  %s\n", project.ID, project.ProjectTypeKey)
		if project.Style != "" {
			fmt.Printf("  Style: %s\n", project.Style)
		}
	},
}

var adminUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Look up users",
}

var adminUserGetCmd = &cobra.Command{
	Use:   "get <account-id>",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := validation.ValidateAccountID(args[0]); err != nil {
			FatalError("%v", err)
		}
		user, err := client.GetUser(rootCtx, args[0])
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(user)
			return
		}
		fmt.Printf("  %-40s %s\n", user.AccountID, user.DisplayName)
		if user.EmailAddress != "" {
			fmt.Printf("  %-40s %s\n", "", ui.RenderMuted(user.EmailAddress))
		}
	},
}

var adminUserSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users by name or email",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		users, err := client.SearchUsers(rootCtx, args[0])
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(users)
			return
		}
		for _, u := range users {
			fmt.Printf("  %-40s %s\n", u.AccountID, u.DisplayName)
		}
	},
}

var adminUserAssignableCmd = &cobra.Command{
	Use:   "assignable [query]",
	Short: "List users assignable in the current project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		users, err := client.FindAssignableUsers(rootCtx, requireProject(), query)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(users)
			return
		}
		for _, u := range users {
			fmt.Printf("  %-40s %s\n", u.AccountID, u.DisplayName)
		}
	},
}

var adminMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	Run: func(_ *cobra.Command, _ []string) {
		user, err := client.GetCurrentUser(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(user)
			return
		}
		fmt.Printf("  %-40s %s\n", user.AccountID, user.DisplayName)
	},
}

var adminGroupCmd = &cobra.Command{
	Use:   "group",
	Short: "List user groups",
	Run: func(_ *cobra.Command, _ []string) {
		groups, err := client.GetGroups(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(groups)
			return
		}
		for _, g := range groups {
			fmt.Printf("  %-36s %s\n", g.GroupID, g.Name)
		}
	},
}

var adminWorkflowCmd = &cobra.Command{
	Use:   "workflow [project-key]",
	Short: "Show valid statuses per issue type for a project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := requireProject()
		if len(args) == 1 {
			var err error
			key, err = validation.NormalizeProjectKey(args[0])
			if err != nil {
				FatalError("%v", err)
			}
		}

		statuses, err := client.GetProjectStatuses(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(statuses)
			return
		}
		for _, ts := range statuses {
			fmt.Printf("%s\n", ui.CategoryStyle.Render(ts.Name))
			for _, s := range ts.Statuses {
				fmt.Printf("  %s\n", ui.RenderStatus(s.Name))
			}
		}
	},
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List all statuses",
	Run: func(_ *cobra.Command, _ []string) {
		statuses, err := client.GetStatuses(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(statuses)
			return
		}
		for _, s := range statuses {
			category := ""
			if s.StatusCategory != nil {
				category = s.StatusCategory.Name
			}
			fmt.Printf("  %-6s %-20s %s\n", s.ID, ui.RenderStatus(s.Name), ui.RenderMuted(category))
		}
	},
}

var adminIssueTypeCmd = &cobra.Command{
	Use:   "issue-type",
	Short: "List issue types",
	Run: func(_ *cobra.Command, _ []string) {
		types, err := client.GetIssueTypes(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(types)
			return
		}
		for _, t := range types {
			marker := ""
			if t.Subtask {
				marker = ui.RenderMuted("subtask")
			}
			fmt.Printf("  %-8s %-16s %s\n", t.ID, t.Name, marker)
		}
	},
}

func init() {
	adminUserCmd.AddCommand(adminUserGetCmd, adminUserSearchCmd, adminUserAssignableCmd)
	adminCmd.AddCommand(adminProjectCmd, adminUserCmd, adminMeCmd, adminGroupCmd,
		adminWorkflowCmd, adminStatusCmd, adminIssueTypeCmd)
	rootCmd.AddCommand(adminCmd)
}
