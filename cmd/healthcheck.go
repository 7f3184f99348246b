package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/session-hooks/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the hooks can read and write their state",
	Long: `Check the health of the session hooks by verifying:
  • Base directory resolution
  • Session and learned directories are writable
  • The counter store round-trips (file or sqlite backend)
  • Session history and learned skills are readable
  • The host (parent) process

Warnings are reported but only failures make the command exit non-zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Session Hooks Health Check"))
		fmt.Fprintln(out)

		cfg, paths, err := loadConfig()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Configuration:"), err)
			return err
		}
		if verbose {
			fmt.Fprintf(out, "   Base dir: %s\n", paths.BaseDir)
			fmt.Fprintf(out, "   Sessions: %s\n", paths.SessionsDir)
			fmt.Fprintf(out, "   Learned:  %s\n", paths.LearnedDir)
			fmt.Fprintf(out, "   Counter:  %s (threshold %d, interval %d)\n", cfg.Counter.Backend, cfg.Compact.Threshold, cfg.Compact.Interval)
			fmt.Fprintln(out)
		}

		hc := &internal.HealthCheck{
			Config: cfg,
			Paths:  paths,
			Now:    time.Now,
			PPID:   os.Getppid(),
		}
		results, checkErr := hc.Run(cmd.Context())
		displayResults(out, results)

		fmt.Fprintln(out)
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if checkErr != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			return fmt.Errorf("health check failed: %w", checkErr)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		return nil
	},
}

func displayResults(out io.Writer, results []internal.CheckResult) {
	for i, r := range results {
		line := fmt.Sprintf("Step %d: %s", i+1, r.Name)
		if r.Detail != "" {
			line += " - " + r.Detail
		}
		switch r.Status {
		case internal.CheckOK:
			fmt.Fprintln(out, successStyle.Render("✅ "+line))
		case internal.CheckWarn:
			fmt.Fprintln(out, warningStyle.Render("⚠️  "+line))
			fmt.Fprintf(out, "   %v\n", r.Err)
		default:
			fmt.Fprintln(out, errorStyle.Render("❌ "+line))
			fmt.Fprintf(out, "   %v\n", r.Err)
		}
	}
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
