package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jira-assistant/jira-as/internal/config"
	"github.com/jira-assistant/jira-as/internal/ui"
)

var configCmd = &cobra.Command{
	Use:     "config",
	GroupID: "setup",
	Short:   "Manage jira-as configuration",
	Long: `Manage jira-as configuration.

Settings come from the config file and environment variables; the
environment wins. The file lives at the path shown by "config path".`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Write a setting to the config file",
	Long: `Write a setting to the config file.

Setting api-token with no value prompts for it without echoing, so the
token stays out of shell history.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		var value string
		if len(args) == 2 {
			value = args[1]
		} else if key == config.KeyAPIToken {
			fmt.Fprint(os.Stderr, "API token: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				FatalError("reading token: %v", err)
			}
			value = strings.TrimSpace(string(raw))
		} else {
			FatalError("no value given for %s", key)
		}

		if err := config.SetYamlConfig(key, value); err != nil {
			FatalError("%v", err)
		}
		if jsonOutput {
			outputJSON(map[string]string{"key": key, "status": "set"})
			return
		}
		okf("Set %s", key)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		if !config.IsKnownKey(key) {
			FatalErrorWithHint(fmt.Sprintf("unknown key %q", key),
				"known keys: "+strings.Join(config.Keys(), ", "))
		}
		value := config.GetString(key)
		if jsonOutput {
			outputJSON(map[string]string{key: value})
			return
		}
		fmt.Println(value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every setting",
	Run: func(_ *cobra.Command, _ []string) {
		values := map[string]string{}
		for _, key := range config.Keys() {
			value := config.GetString(key)
			if key == config.KeyAPIToken && value != "" {
				value = "(set)"
			}
			values[key] = value
		}
		if jsonOutput {
			outputJSON(values)
			return
		}
		for _, key := range config.Keys() {
			fmt.Printf("  %-16s %s\n", key, values[key])
		}
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from the config file",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key := strings.ToLower(args[0])
		if err := config.UnsetYamlConfig(key); err != nil {
			FatalError("%v", err)
		}
		if jsonOutput {
			outputJSON(map[string]string{"key": key, "status": "unset"})
			return
		}
		okf("Unset %s", key)
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for problems",
	Run: func(_ *cobra.Command, _ []string) {
		problems := config.Validate()
		if jsonOutput {
			outputJSON(map[string]any{"valid": len(problems) == 0, "problems": problems})
			if len(problems) > 0 {
				os.Exit(1)
			}
			return
		}
		if len(problems) == 0 {
			okf("Configuration looks valid")
			return
		}
		for _, p := range problems {
			fmt.Printf("%s %s\n", ui.RenderFail(ui.IconFail), p)
		}
		os.Exit(1)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(_ *cobra.Command, _ []string) {
		path := config.FilePath()
		if jsonOutput {
			outputJSON(map[string]string{"path": path})
			return
		}
		fmt.Println(path)
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd,
		configUnsetCmd, configValidateCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
