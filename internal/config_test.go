package internal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/session-hooks/testutil"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ThresholdEnv,
		"SESSION_HOOKS_COMPACT_THRESHOLD",
		"SESSION_HOOKS_COMPACT_INTERVAL",
		"SESSION_HOOKS_SESSION_ID_ENV",
		"SESSION_HOOKS_SESSION_RECENT_DAYS",
		"SESSION_HOOKS_COUNTER_BACKEND",
		"SESSION_HOOKS_COUNTER_SQLITE_PATH",
		"SESSION_HOOKS_BASE_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)
	base := testutil.CreateTempDir(t)

	cfg, err := LoadConfig("", base)
	require.NoError(t, err)

	assert.Equal(t, base, cfg.BaseDir)
	assert.Equal(t, DefaultCompactThreshold, cfg.Compact.Threshold)
	assert.Equal(t, DefaultCompactInterval, cfg.Compact.Interval)
	assert.Equal(t, DefaultSessionIDEnv, cfg.Session.IDEnv)
	assert.Equal(t, DefaultRecentDays, cfg.Session.RecentDays)
	assert.Equal(t, CounterBackendFile, cfg.Counter.Backend)
}

func TestLoadConfig_ThresholdEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "override", value: "2", want: 2},
		{name: "unparseable", value: "lots", want: DefaultCompactThreshold},
		{name: "zero", value: "0", want: DefaultCompactThreshold},
		{name: "negative", value: "-5", want: DefaultCompactThreshold},
		{name: "unset", value: "", want: DefaultCompactThreshold},
		{name: "leading zero is decimal", value: "010", want: 10},
		{name: "surrounding spaces", value: " 2 ", want: 2},
		{name: "letters", value: "abc", want: DefaultCompactThreshold},
		{name: "hex is not a number", value: "0x10", want: DefaultCompactThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(ThresholdEnv, tt.value)

			cfg, err := LoadConfig("", testutil.CreateTempDir(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Compact.Threshold)
		})
	}
}

func TestLoadConfig_IntegersAreDecimal(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SESSION_HOOKS_COMPACT_INTERVAL", "010")
	t.Setenv("SESSION_HOOKS_SESSION_RECENT_DAYS", " 09 ")

	cfg, err := LoadConfig("", testutil.CreateTempDir(t))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Compact.Interval)
	assert.Equal(t, 9, cfg.Session.RecentDays)

	t.Setenv("SESSION_HOOKS_COMPACT_INTERVAL", "abc")
	t.Setenv("SESSION_HOOKS_SESSION_RECENT_DAYS", "-1")
	cfg, err = LoadConfig("", testutil.CreateTempDir(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultCompactInterval, cfg.Compact.Interval)
	assert.Equal(t, DefaultRecentDays, cfg.Session.RecentDays)
}

func TestLoadConfig_File(t *testing.T) {
	clearConfigEnv(t)
	base := testutil.CreateTempDir(t)
	testutil.WriteFile(t, filepath.Join(base, "session-hooks.yaml"), `
compact:
  threshold: 30
  interval: 10
session:
  recent_days: 3
counter:
  backend: SQLite
`, time.Time{})

	cfg, err := LoadConfig("", base)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Compact.Threshold)
	assert.Equal(t, 10, cfg.Compact.Interval)
	assert.Equal(t, 3, cfg.Session.RecentDays)
	assert.Equal(t, CounterBackendSQLite, cfg.Counter.Backend)

	t.Setenv(ThresholdEnv, "12")
	cfg, err = LoadConfig("", base)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Compact.Threshold, "environment beats the config file")
}

func TestLoadConfig_BrokenFileFallsBack(t *testing.T) {
	clearConfigEnv(t)
	base := testutil.CreateTempDir(t)
	path := filepath.Join(base, "broken.yaml")
	testutil.WriteFile(t, path, "compact: [unterminated\n", time.Time{})

	cfg, err := LoadConfig(path, base)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultCompactThreshold, cfg.Compact.Threshold)
	assert.Equal(t, base, cfg.BaseDir)
}

func TestLoadConfig_BrokenFileKeepsEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(ThresholdEnv, "7")
	base := testutil.CreateTempDir(t)
	path := filepath.Join(base, "broken.yaml")
	testutil.WriteFile(t, path, "compact: [unterminated\n", time.Time{})

	cfg, err := LoadConfig(path, base)
	require.Error(t, err)
	assert.Equal(t, 7, cfg.Compact.Threshold)
}

func TestConfig_OpenCounter(t *testing.T) {
	ctx := context.Background()
	base := testutil.CreateTempDir(t)
	paths := NewPaths(base)
	paths.TempDir = filepath.Join(base, "tmp")

	cfg := NewDefaultConfig()
	counter, err := cfg.OpenCounter(ctx, paths)
	require.NoError(t, err)
	assert.IsType(t, &FileCounter{}, counter)

	cfg.Counter.Backend = CounterBackendSQLite
	counter, err = cfg.OpenCounter(ctx, paths)
	require.NoError(t, err)
	require.IsType(t, &SQLiteCounter{}, counter)
	assert.Equal(t, filepath.Join(base, "session-hooks.db"), counter.(*SQLiteCounter).Path())
	require.NoError(t, counter.Close())

	cfg.Counter.Backend = "redis"
	_, err = cfg.OpenCounter(ctx, paths)
	assert.Error(t, err)
}
