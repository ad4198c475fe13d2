package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jira-assistant/jira-as/internal/config"
	"github.com/jira-assistant/jira-as/internal/debug"
	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/mock"
	"github.com/jira-assistant/jira-as/internal/telemetry"
	"github.com/jira-assistant/jira-as/internal/ui"
)

// Global flags and state shared across command files.
var (
	jsonOutput  bool
	verboseFlag bool
	quietFlag   bool
	projectFlag string

	rootCtx    context.Context
	rootCancel context.CancelFunc

	// client is the Jira API in use: the HTTP client, or the in-memory
	// mock when mock mode is on. Nil for offline commands.
	client jira.API
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project key (default: config default-project)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	rootCmd.Flags().BoolP("version", "V", false, "Print version information")

	rootCmd.AddGroup(&cobra.Group{ID: "issues", Title: "Working With Issues:"})
	rootCmd.AddGroup(&cobra.Group{ID: "boards", Title: "Boards & Sprints:"})
	rootCmd.AddGroup(&cobra.Group{ID: "service", Title: "Service Management:"})
	rootCmd.AddGroup(&cobra.Group{ID: "workflow", Title: "Workflow & Time:"})
	rootCmd.AddGroup(&cobra.Group{ID: "setup", Title: "Setup & Configuration:"})
	rootCmd.AddGroup(&cobra.Group{ID: "advanced", Title: "Developer & Advanced:"})
}

var rootCmd = &cobra.Command{
	Use:   "jira-as",
	Short: "jira-as - Jira Cloud from the command line",
	Long: `A command-line client for Jira Cloud: issues, search, boards and
sprints, service management, and time tracking, with a built-in offline
mock (JIRA_MOCK_MODE=true) for demos and tests.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("jira-as version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
		if jsonOutput {
			ui.DisableColors()
		}

		setupSignalContext()

		if err := config.Initialize(); err != nil {
			FatalError("%v", err)
		}
		if projectFlag == "" {
			projectFlag = config.GetString(config.KeyDefaultProject)
		}

		if err := telemetry.Init(rootCtx); err != nil {
			WarnError("telemetry disabled: %v", err)
		}

		if isOfflineCommand(cmd) {
			return
		}
		openClient()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if client != nil {
			_ = client.Close()
		}
		if err := telemetry.Shutdown(context.Background()); err != nil {
			debug.Logf("telemetry shutdown: %v\n", err)
		}
		if rootCancel != nil {
			rootCancel()
		}
	},
}

// setupSignalContext creates the root context, canceled on SIGINT/SIGTERM so
// in-flight requests stop cleanly.
func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// offlineCommands never talk to Jira, so they run without credentials.
var offlineCommands = map[string]bool{
	"config":        true,
	"version":       true,
	"help":          true,
	"completion":    true,
	"build":         true, // search build
	"validate":      true, // search validate
	"branch-name":   true,
	"parse-commits": true,
}

func isOfflineCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if offlineCommands[c.Name()] {
			return true
		}
	}
	return false
}

// openClient wires the global client: the in-memory mock when mock mode is
// requested, the HTTP client otherwise.
func openClient() {
	if mock.Enabled() || config.MockMode() {
		debug.Logf("mock mode: using in-memory Jira\n")
		client = mock.NewClient()
		return
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		FatalErrorWithHint(err.Error(),
			"set JIRA_URL, JIRA_EMAIL, and JIRA_API_TOKEN, run 'jira-as config set', or use JIRA_MOCK_MODE=true")
	}
	c := jira.NewClient(creds.URL, creds.Email, creds.APIToken)
	if timeout := config.GetDuration(config.KeyTimeout); timeout > 0 {
		c.MaxElapsed = timeout
	}
	client = c
}

// requireProject returns the project key from --project or config, or exits.
func requireProject() string {
	if projectFlag == "" {
		FatalErrorWithHint("no project specified",
			"pass --project KEY or set default-project with 'jira-as config set default-project KEY'")
	}
	return projectFlag
}

func main() {
	rootCmd.InitDefaultHelpCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
