package internal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Hook log prefixes
const (
	SessionStartPrefix = "SessionStart"
	SessionEndPrefix   = "SessionEnd"
	CompactPrefix      = "StrategicCompact"
)

// HookEnv is everything a hook reads from the process it runs in
type HookEnv struct {
	Config *Config
	Paths  Paths
	Input  HookInput
	Cwd    string
	Now    func() time.Time
	Getenv func(string) string
	PPID   int
	Log    *log.Logger
}

// NewHookEnv fills an environment from the current process
func NewHookEnv(cfg *Config, paths Paths, input HookInput, logger *log.Logger) *HookEnv {
	cwd := input.CWD
	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	return &HookEnv{
		Config: cfg,
		Paths:  paths,
		Input:  input,
		Cwd:    cwd,
		Now:    time.Now,
		Getenv: os.Getenv,
		PPID:   os.Getppid(),
		Log:    logger,
	}
}

func (e *HookEnv) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *HookEnv) config() *Config {
	if e.Config == nil {
		return NewDefaultConfig()
	}
	return e.Config
}

// StartReport summarizes what the session-start hook found
type StartReport struct {
	RecentSessions []FileEntry
	LearnedSkills  []FileEntry
	WorkingDir     string
}

// RunSessionStart reports recent session markers and learned skills
func RunSessionStart(env *HookEnv) (*StartReport, error) {
	if err := env.Paths.EnsureSessionDirs(); err != nil {
		return nil, err
	}

	store := NewSessionStore(env.Paths)
	report := &StartReport{WorkingDir: env.Cwd}

	recent, err := store.RecentMarkers(env.config().Session.RecentDays, env.now())
	if err != nil {
		return nil, err
	}
	report.RecentSessions = recent
	if len(recent) > 0 {
		env.Log.Infof("Found %d recent session(s)", len(recent))
		env.Log.Infof("Latest: %s", recent[0].Path)
	}

	learned, err := store.LearnedSkills()
	if err != nil {
		return nil, err
	}
	report.LearnedSkills = learned
	if len(learned) > 0 {
		env.Log.Infof("%d learned skill(s) available in %s", len(learned), env.Paths.LearnedDir)
	}

	env.Log.Infof("Working directory: %s", env.Cwd)
	return report, nil
}

// RunSessionEnd writes the session marker and appends to the session log
func RunSessionEnd(env *HookEnv) (string, error) {
	store := NewSessionStore(env.Paths)
	markerPath, err := store.RecordSessionEnd(SessionRecord{
		EndedAt:    env.now(),
		WorkingDir: env.Cwd,
	})
	if err != nil {
		return markerPath, err
	}
	env.Log.Infof("Session recorded: %s", markerPath)
	return markerPath, nil
}

// CompactResult is the outcome of one suggest-compact invocation
type CompactResult struct {
	SessionKey string
	Count      int
	Message    string
}

// CompactMessage returns the suggestion for count, if any: once when count
// reaches threshold, then every interval calls beyond it.
func CompactMessage(count, threshold, interval int) (string, bool) {
	if threshold <= 0 {
		threshold = DefaultCompactThreshold
	}
	if interval <= 0 {
		interval = DefaultCompactInterval
	}
	switch {
	case count == threshold:
		return fmt.Sprintf("%d tool calls reached - consider /compact if transitioning phases", threshold), true
	case count > threshold && count%interval == 0:
		return fmt.Sprintf("%d tool calls - good checkpoint for /compact if context is stale", count), true
	default:
		return "", false
	}
}

// RunSuggestCompact counts one tool call for the session and emits a
// suggestion at the configured checkpoints.
func RunSuggestCompact(ctx context.Context, env *HookEnv, counter Counter) (CompactResult, error) {
	cfg := env.config()
	sessionID := ResolveSessionID(env.Input, env.Getenv, cfg.Session.IDEnv, env.PPID)
	result := CompactResult{SessionKey: SanitizeKey(sessionID)}

	count, err := counter.IncrementAndGet(ctx, result.SessionKey)
	if err != nil {
		return result, err
	}
	result.Count = count
	if tool := env.Input.ToolName; tool != "" {
		env.Log.Debugf("Tool call %d (%s) for session %s", count, tool, result.SessionKey)
	} else {
		env.Log.Debugf("Tool call %d for session %s", count, result.SessionKey)
	}

	if msg, ok := CompactMessage(count, cfg.Compact.Threshold, cfg.Compact.Interval); ok {
		result.Message = msg
		env.Log.Info(msg)
	}
	return result, nil
}

// NextCheckpoint is the smallest count above count at which CompactMessage
// would emit a suggestion.
func NextCheckpoint(count, threshold, interval int) int {
	if threshold <= 0 {
		threshold = DefaultCompactThreshold
	}
	if interval <= 0 {
		interval = DefaultCompactInterval
	}
	if count < threshold {
		return threshold
	}
	return (count/interval + 1) * interval
}
