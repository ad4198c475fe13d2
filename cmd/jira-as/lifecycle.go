package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var lifecycleCmd = &cobra.Command{
	Use:     "lifecycle",
	GroupID: "workflow",
	Short:   "Issue lifecycle: transitions, components, versions",
}

var lifecycleTransitionsCmd = &cobra.Command{
	Use:   "transitions <key>",
	Short: "Show an issue's current status and where it can go",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := normalizeKeyArg(args[0])

		issue, err := client.GetIssue(rootCtx, key, []string{"summary", "status"})
		if err != nil {
			FatalAPIError(err)
		}
		transitions, err := client.GetTransitions(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}

		if jsonOutput {
			outputJSON(map[string]any{
				"key":         key,
				"status":      issue.Fields.Status,
				"transitions": transitions,
			})
			return
		}
		current := ""
		if issue.Fields.Status != nil {
			current = issue.Fields.Status.Name
		}
		fmt.Printf("%s  %s\n\n", ui.RenderHeader(key), ui.RenderStatus(current))
		for _, t := range transitions {
			fmt.Printf("  %-4s %-16s -> %s\n", t.ID, t.Name, ui.RenderStatus(t.To.Name))
		}
	},
}

func lifecycleProject(args []string) string {
	if len(args) == 1 {
		key, err := validation.NormalizeProjectKey(args[0])
		if err != nil {
			FatalError("%v", err)
		}
		return key
	}
	return requireProject()
}

var lifecycleComponentCmd = &cobra.Command{
	Use:   "component [project-key]",
	Short: "List a project's components",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := lifecycleProject(args)
		components, err := client.GetProjectComponents(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		if jsonOutput {
			outputJSON(components)
			return
		}
		if len(components) == 0 {
			fmt.Println(ui.RenderMuted("No components"))
			return
		}
		for _, c := range components {
			fmt.Printf("  %-6s %s\n", c.ID, c.Name)
		}
	},
}

var lifecycleVersionCmd = &cobra.Command{
	Use:   "version [project-key]",
	Short: "List a project's versions",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		unreleasedOnly, _ := cmd.Flags().GetBool("unreleased")

		key := lifecycleProject(args)
		versions, err := client.GetProjectVersions(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		if unreleasedOnly {
			filtered := versions[:0]
			for _, v := range versions {
				if !v.Released && !v.Archived {
					filtered = append(filtered, v)
				}
			}
			versions = filtered
		}

		if jsonOutput {
			outputJSON(versions)
			return
		}
		if len(versions) == 0 {
			fmt.Println(ui.RenderMuted("No versions"))
			return
		}
		for _, v := range versions {
			state := ""
			switch {
			case v.Archived:
				state = ui.RenderMuted("archived")
			case v.Released:
				state = ui.RenderPass("released")
			default:
				state = ui.RenderWarn("unreleased")
			}
			fmt.Printf("  %-6s %-16s %s\n", v.ID, v.Name, state)
		}
	},
}

func init() {
	lifecycleVersionCmd.Flags().Bool("unreleased", false, "Show only unreleased versions")

	lifecycleCmd.AddCommand(lifecycleTransitionsCmd, lifecycleComponentCmd, lifecycleVersionCmd)
	rootCmd.AddCommand(lifecycleCmd)
}
