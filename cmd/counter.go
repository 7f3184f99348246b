package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/iksnae/session-hooks/internal"
	"github.com/spf13/cobra"
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Inspect or reset the per-session tool-call counter",
	Long: `Inspect or reset the tool-call counter maintained by suggest-compact.

The session id defaults to the same resolution the hook uses: the
configured session id variable (CLAUDE_SESSION_ID), then the parent
process id. Pass an id explicitly when running outside the assistant.`,
}

var counterShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show the tool-call count for a session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCounter(cmd, args, func(ctx context.Context, counter internal.Counter, cfg *internal.Config, key string) error {
			count, err := counter.Get(ctx, key)
			if err != nil {
				return fmt.Errorf("failed to read counter: %w", err)
			}
			displayCount(cmd.OutOrStdout(), cfg, key, count)
			return nil
		})
	},
}

var counterResetCmd = &cobra.Command{
	Use:   "reset [session-id]",
	Short: "Reset the tool-call count for a session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCounter(cmd, args, func(ctx context.Context, counter internal.Counter, cfg *internal.Config, key string) error {
			if err := counter.Reset(ctx, key); err != nil {
				return fmt.Errorf("failed to reset counter: %w", err)
			}
			internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Counter reset for session %s", key))
			return nil
		})
	},
}

type counterFunc func(ctx context.Context, counter internal.Counter, cfg *internal.Config, key string) error

func withCounter(cmd *cobra.Command, args []string, fn counterFunc) error {
	cfg, paths, err := loadConfig()
	if err != nil {
		return err
	}

	var input internal.HookInput
	if len(args) == 1 {
		input.SessionID = args[0]
	}
	key := internal.SanitizeKey(internal.ResolveSessionID(input, os.Getenv, cfg.Session.IDEnv, os.Getppid()))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	counter, err := cfg.OpenCounter(ctx, paths)
	if err != nil {
		return fmt.Errorf("failed to open counter: %w", err)
	}
	defer func() {
		if err := counter.Close(); err != nil {
			internal.LogWarn("Failed to close counter: %v", err)
		}
	}()

	internal.LogDebug("Using %s counter for session %s", cfg.Counter.Backend, key)
	return fn(ctx, counter, cfg, key)
}

func displayCount(out io.Writer, cfg *internal.Config, key string, count int) {
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Session:"), idStyle.Render(key))
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Tool calls:"), countStyle.Render(fmt.Sprint(count)))
	next := internal.NextCheckpoint(count, cfg.Compact.Threshold, cfg.Compact.Interval)
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render("Next suggestion at:"), dateStyle.Render(fmt.Sprint(next)))
}

func init() {
	rootCmd.AddCommand(counterCmd)
	counterCmd.AddCommand(counterShowCmd)
	counterCmd.AddCommand(counterResetCmd)
}
