package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/session-hooks/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	baseDir    string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "session-hooks",
	Short: "Session lifecycle hooks for an AI coding assistant",
	Long: `Session lifecycle hooks for an AI coding assistant.

The host runs these at fixed points of a session:
  session-hooks session-start     # report recent sessions and learned skills
  session-hooks session-end       # record that the session ended
  session-hooks suggest-compact   # count tool calls, suggest /compact at checkpoints

Hooks never fail: errors are logged to stderr and the exit status is 0.

Operator commands:
  session-hooks sessions          # list recent session markers
  session-hooks export --format md
  session-hooks counter show
  session-hooks healthcheck`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration and directories for operator commands.
func loadConfig() (*internal.Config, internal.Paths, error) {
	cfg, err := internal.LoadConfig(configFile, baseDir)
	if err != nil {
		return nil, internal.Paths{}, fmt.Errorf("failed to load config: %w", err)
	}
	paths, err := cfg.Paths()
	if err != nil {
		return nil, internal.Paths{}, fmt.Errorf("failed to resolve paths: %w", err)
	}
	return cfg, paths, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default <base-dir>/session-hooks.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "", "Assistant config directory (default ~/.claude)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
