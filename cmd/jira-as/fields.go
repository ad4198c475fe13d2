package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/ui"
)

var fieldsCmd = &cobra.Command{
	Use:     "fields",
	GroupID: "advanced",
	Short:   "Field metadata and per-project agile field mappings",
	Long: `Field metadata and per-project agile field mappings.

Jira exposes agile data (story points, epic link, sprint) through custom
fields whose ids differ between sites. configure-agile discovers them and
records the mapping in a TOML file so other commands can use it.`,
}

// AgileFields maps agile concepts to the site's custom field ids.
type AgileFields struct {
	StoryPoints string `toml:"story_points,omitempty"`
	EpicLink    string `toml:"epic_link,omitempty"`
	Sprint      string `toml:"sprint,omitempty"`
}

// agileFieldsFile holds one mapping per project key.
type agileFieldsFile struct {
	Projects map[string]AgileFields `toml:"projects"`
}

func agileFieldsPath() string {
	if path := os.Getenv("JIRA_AS_AGILE_FIELDS"); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "agile_fields.toml"
	}
	return filepath.Join(dir, "jira-as", "agile_fields.toml")
}

func loadAgileFields() (*agileFieldsFile, error) {
	file := &agileFieldsFile{Projects: map[string]AgileFields{}}
	if _, err := toml.DecodeFile(agileFieldsPath(), file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return file, nil
		}
		return nil, fmt.Errorf("reading %s: %w", agileFieldsPath(), err)
	}
	if file.Projects == nil {
		file.Projects = map[string]AgileFields{}
	}
	return file, nil
}

func saveAgileFields(file *agileFieldsFile) error {
	path := agileFieldsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(file)
}

// discoverAgileFields finds the site's agile custom fields by name.
func discoverAgileFields(fields []jira.Field) AgileFields {
	var mapping AgileFields
	for _, f := range fields {
		if !f.Custom {
			continue
		}
		switch strings.ToLower(f.Name) {
		case "story points", "story point estimate":
			if mapping.StoryPoints == "" {
				mapping.StoryPoints = f.ID
			}
		case "epic link":
			mapping.EpicLink = f.ID
		case "sprint":
			mapping.Sprint = f.ID
		}
	}
	return mapping
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all fields",
	Run: func(cmd *cobra.Command, _ []string) {
		customOnly, _ := cmd.Flags().GetBool("custom")

		fields, err := client.GetFields(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		if customOnly {
			filtered := fields[:0]
			for _, f := range fields {
				if f.Custom {
					filtered = append(filtered, f)
				}
			}
			fields = filtered
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].ID < fields[j].ID })

		if jsonOutput {
			outputJSON(fields)
			return
		}
		for _, f := range fields {
			schema := ""
			if f.Schema != nil {
				schema = f.Schema.Type
			}
			fmt.Printf("  %-24s %-28s %s\n", f.ID, f.Name, ui.RenderMuted(schema))
		}
	},
}

var fieldsConfigureAgileCmd = &cobra.Command{
	Use:   "configure-agile",
	Short: "Discover and record the project's agile custom field ids",
	Run: func(cmd *cobra.Command, _ []string) {
		project := requireProject()

		fields, err := client.GetFields(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		mapping := discoverAgileFields(fields)

		if cmd.Flags().Changed("story-points") {
			mapping.StoryPoints, _ = cmd.Flags().GetString("story-points")
		}
		if cmd.Flags().Changed("epic-link") {
			mapping.EpicLink, _ = cmd.Flags().GetString("epic-link")
		}
		if cmd.Flags().Changed("sprint") {
			mapping.Sprint, _ = cmd.Flags().GetString("sprint")
		}

		file, err := loadAgileFields()
		if err != nil {
			FatalError("%v", err)
		}
		file.Projects[project] = mapping
		if err := saveAgileFields(file); err != nil {
			FatalError("writing %s: %v", agileFieldsPath(), err)
		}

		if jsonOutput {
			outputJSON(map[string]any{"project": project, "fields": mapping, "path": agileFieldsPath()})
			return
		}
		okf("Recorded agile fields for %s in %s", project, agileFieldsPath())
		fmt.Printf("  story_points: %s\n  epic_link:    %s\n  sprint:       %s\n",
			orDash(mapping.StoryPoints), orDash(mapping.EpicLink), orDash(mapping.Sprint))
	},
}

var fieldsCheckProjectCmd = &cobra.Command{
	Use:   "check-project",
	Short: "Verify the recorded agile field mapping still matches the site",
	Run: func(_ *cobra.Command, _ []string) {
		project := requireProject()

		file, err := loadAgileFields()
		if err != nil {
			FatalError("%v", err)
		}
		mapping, ok := file.Projects[project]
		if !ok {
			FatalErrorWithHint(fmt.Sprintf("no agile field mapping for %s", project),
				"run: jira-as fields configure-agile")
		}

		fields, err := client.GetFields(rootCtx)
		if err != nil {
			FatalAPIError(err)
		}
		known := make(map[string]bool, len(fields))
		for _, f := range fields {
			known[f.ID] = true
		}

		checks := []struct{ name, id string }{
			{"story_points", mapping.StoryPoints},
			{"epic_link", mapping.EpicLink},
			{"sprint", mapping.Sprint},
		}
		problems := []string{}
		for _, check := range checks {
			if check.id != "" && !known[check.id] {
				problems = append(problems, fmt.Sprintf("%s field %s no longer exists", check.name, check.id))
			}
		}

		if jsonOutput {
			outputJSON(map[string]any{"project": project, "valid": len(problems) == 0, "problems": problems})
			if len(problems) > 0 {
				os.Exit(1)
			}
			return
		}
		if len(problems) == 0 {
			okf("Agile field mapping for %s is valid", project)
			return
		}
		for _, p := range problems {
			fmt.Printf("%s %s\n", ui.RenderFail(ui.IconFail), p)
		}
		os.Exit(1)
	},
}

func init() {
	fieldsListCmd.Flags().Bool("custom", false, "Show only custom fields")
	fieldsConfigureAgileCmd.Flags().String("story-points", "", "Override the story points field id")
	fieldsConfigureAgileCmd.Flags().String("epic-link", "", "Override the epic link field id")
	fieldsConfigureAgileCmd.Flags().String("sprint", "", "Override the sprint field id")

	fieldsCmd.AddCommand(fieldsListCmd, fieldsConfigureAgileCmd, fieldsCheckProjectCmd)
	rootCmd.AddCommand(fieldsCmd)
}
