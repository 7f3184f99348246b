package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/session-hooks/internal"
	"github.com/spf13/cobra"
)

var (
	sessionsDays int
	sessionsAll  bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded session markers",
	Long: `List the session marker files written by the session-end hook,
newest first. By default only markers from the last session.recent_days
days (7) are shown; use --days to change the window or --all for everything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, paths, err := loadConfig()
		if err != nil {
			return err
		}

		days := cfg.Session.RecentDays
		if cmd.Flags().Changed("days") {
			days = sessionsDays
		}
		if sessionsAll {
			days = 0
		}

		store := internal.NewSessionStore(paths)
		now := time.Now()
		markers, err := store.RecentMarkers(days, now)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		internal.LogDebug("Scanned %s (window: %d day(s))", paths.SessionsDir, days)

		displayMarkers(cmd.OutOrStdout(), markers, now)
		return nil
	},
}

func displayMarkers(out io.Writer, markers []internal.FileEntry, now time.Time) {
	if len(markers) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No sessions found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %s session(s)", countStyle.Render(fmt.Sprint(len(markers))))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Ended")+"\t"+titleStyle.Render("File")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, marker := range markers {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n",
			idStyle.Render(internal.MarkerID(marker.Name)),
			dateStyle.Render(relativeTime(marker.ModTime, now)),
			marker.Name,
		)
	}
	_ = w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("💡 Latest: ")+latestPath(markers))
}

func latestPath(markers []internal.FileEntry) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(markers[0].Path)
}

func relativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().IntVar(&sessionsDays, "days", internal.DefaultRecentDays, "Only show markers modified within this many days")
	sessionsCmd.Flags().BoolVar(&sessionsAll, "all", false, "Show every marker regardless of age")
}
