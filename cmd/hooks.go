package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/session-hooks/internal"
	"github.com/spf13/cobra"
)

// hookRun is the body of a hook; its error never reaches the host.
type hookRun func(ctx context.Context, env *internal.HookEnv) error

// newHookCmd builds a hidden hook subcommand. Any failure, including a panic,
// is logged with the hook prefix and the command still succeeds.
func newHookCmd(use, short, prefix string, run hookRun) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Hidden:        true,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		// Hosts may pass arguments or flags we do not know; they are ignored.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			runHook(cmd, prefix, run)
			return nil
		},
	}
}

func runHook(cmd *cobra.Command, prefix string, run hookRun) {
	hookLog := internal.NewHookLogger(cmd.ErrOrStderr(), prefix)

	defer func() {
		if r := recover(); r != nil {
			hookLog.Error("Error", "err", fmt.Sprint(r))
		}
	}()

	cfg, err := internal.LoadConfig(configFile, baseDir)
	if err != nil {
		// cfg still carries defaults and environment overrides
		hookLog.Warn("Using default configuration", "err", err)
	}
	paths, err := cfg.Paths()
	if err != nil {
		hookLog.Error("Error", "err", &internal.HookError{Hook: prefix, Err: err})
		return
	}

	input := internal.ReadHookInput(cmd.InOrStdin())
	if input.HookEventName != "" {
		hookLog.Debug("Hook input", "event", input.HookEventName, "tool", input.ToolName)
	}
	env := internal.NewHookEnv(cfg, paths, input, hookLog)
	if err := run(cmd.Context(), env); err != nil {
		hookLog.Error("Error", "err", &internal.HookError{Hook: prefix, Err: err})
	}
}

var sessionStartCmd = newHookCmd(
	"session-start",
	"SessionStart hook: report recent sessions and learned skills",
	internal.SessionStartPrefix,
	func(ctx context.Context, env *internal.HookEnv) error {
		_, err := internal.RunSessionStart(env)
		return err
	},
)

var sessionEndCmd = newHookCmd(
	"session-end",
	"SessionEnd hook: write a session marker and append to the session log",
	internal.SessionEndPrefix,
	func(ctx context.Context, env *internal.HookEnv) error {
		_, err := internal.RunSessionEnd(env)
		return err
	},
)

var suggestCompactCmd = newHookCmd(
	"suggest-compact",
	"PreToolUse hook: count tool calls and suggest /compact at checkpoints",
	internal.CompactPrefix,
	func(ctx context.Context, env *internal.HookEnv) error {
		counter, err := env.Config.OpenCounter(ctx, env.Paths)
		if err != nil {
			return err
		}
		defer func() {
			if err := counter.Close(); err != nil {
				env.Log.Debug("Counter close failed", "err", err)
			}
		}()

		_, err = internal.RunSuggestCompact(ctx, env, counter)
		return err
	},
)

func init() {
	rootCmd.AddCommand(sessionStartCmd)
	rootCmd.AddCommand(sessionEndCmd)
	rootCmd.AddCommand(suggestCompactCmd)
}
