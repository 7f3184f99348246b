package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/session-hooks/internal"
	"github.com/spf13/cobra"
)

var limit int

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <marker-id>",
	Short: "Show a recorded session marker",
	Long: `Display one session marker, found by its short id or file name,
together with the most recent session-log entries for the same working directory.
Use 'session-hooks sessions' to see available marker ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, paths, err := loadConfig()
		if err != nil {
			return err
		}

		store := internal.NewSessionStore(paths)
		marker, err := store.FindMarker(args[0])
		if err != nil {
			return err
		}

		content, _, err := internal.ReadFile(marker.Path)
		if err != nil {
			return fmt.Errorf("failed to read marker: %w", err)
		}
		record, err := internal.ParseMarker(content)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", marker.Name, err)
		}

		records, _, err := store.LoadRecords()
		if err != nil {
			internal.LogWarn("Failed to read session log: %v", err)
		}

		displayMarker(cmd.OutOrStdout(), marker, record, sameDirectory(records, record.WorkingDir, limit))
		return nil
	},
}

// sameDirectory returns up to n of the latest records for dir, newest first.
// n <= 0 means no limit.
func sameDirectory(records []internal.SessionRecord, dir string, n int) []internal.SessionRecord {
	var matched []internal.SessionRecord
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].WorkingDir != dir {
			continue
		}
		matched = append(matched, records[i])
		if n > 0 && len(matched) == n {
			break
		}
	}
	return matched
}

func displayMarker(out io.Writer, marker internal.FileEntry, record internal.SessionRecord, history []internal.SessionRecord) {
	fmt.Fprintln(out, sessionHeaderStyle.Render("📝 Session "+internal.MarkerID(marker.Name)))

	metaParts := []string{
		fmt.Sprintf("Ended: %s", internal.DateTimeString(record.EndedAt)),
		fmt.Sprintf("Working directory: %s", record.WorkingDir),
	}
	fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	fmt.Fprintln(out, timestampStyle.Render(marker.Path))
	fmt.Fprintln(out)

	if len(history) == 0 {
		fmt.Fprintln(out, idStyle.Render("No session-log entries for this directory"))
		return
	}
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Sessions in this directory (%d)", len(history))))
	for _, r := range history {
		fmt.Fprintf(out, "  %s\n", dateStyle.Render(internal.DateTimeString(r.EndedAt)))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 10, "Limit number of session-log entries to show (0 for all)")
}
