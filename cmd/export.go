package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/session-hooks/internal"
	"github.com/iksnae/session-hooks/internal/export"
	"github.com/spf13/cobra"
)

var (
	format     string
	outputFile string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session log to file",
	Long: `Export the session log written by the session-end hook to one of
jsonl, json, yaml or md. Malformed log lines are skipped with a warning.

Output goes to stdout unless --out is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		_, paths, err := loadConfig()
		if err != nil {
			return err
		}

		records, skipped, err := internal.NewSessionStore(paths).LoadRecords()
		if err != nil {
			return fmt.Errorf("failed to load session log: %w", err)
		}
		if skipped > 0 {
			internal.LogWarn("Skipped %d malformed line(s) in %s", skipped, paths.SessionLogPath())
		}
		internal.LogDebug("Loaded %d session record(s)", len(records))

		if outputFile == "" {
			return exporter.Export(records, cmd.OutOrStdout())
		}

		if err := writeExport(exporter, records, outputFile); err != nil {
			return err
		}
		internal.PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Exported %d session(s) to %s", len(records), outputFile))
		return nil
	},
}

func writeExport(exporter export.Exporter, records []internal.SessionRecord, path string) (err error) {
	if err := internal.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return exporter.Export(records, f)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format: jsonl, json, yaml, md")
	exportCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write to this file instead of stdout")
}
