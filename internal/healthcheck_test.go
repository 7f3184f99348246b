package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/session-hooks/testutil"
)

func newHealthCheck(t *testing.T, base string) *HealthCheck {
	t.Helper()
	paths := NewPaths(base)
	paths.TempDir = filepath.Join(base, "tmp")
	return &HealthCheck{
		Config: NewDefaultConfig(),
		Paths:  paths,
		PPID:   os.Getpid(),
	}
}

func resultsByName(results []CheckResult) map[string]CheckResult {
	byName := make(map[string]CheckResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	return byName
}

func TestHealthCheck_Healthy(t *testing.T) {
	base := testutil.CreateTempDir(t)
	now := time.Now()
	testutil.CreateSessionsFixture(t, base, now, []time.Duration{time.Hour}, 2)
	hc := newHealthCheck(t, base)
	hc.Now = func() time.Time { return now }

	results, err := hc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 6)

	byName := resultsByName(results)
	assert.Equal(t, CheckOK, byName["Session directories"].Status)
	assert.Equal(t, CheckOK, byName["Counter store"].Status)
	assert.Equal(t, "1 recent marker(s), 0 logged session(s)", byName["Session history"].Detail)
	assert.Contains(t, byName["Learned skills"].Detail, "2 file(s)")
	assert.Equal(t, CheckOK, byName["Host process"].Status)
	assert.NotEmpty(t, byName["Host process"].Detail)

	entries, err := os.ReadDir(filepath.Join(base, "sessions"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".healthcheck-", "scratch file is removed")
	}
}

func TestHealthCheck_SQLiteBackend(t *testing.T) {
	base := testutil.CreateTempDir(t)
	hc := newHealthCheck(t, base)
	hc.Config.Counter.Backend = CounterBackendSQLite

	results, err := hc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CheckOK, resultsByName(results)["Counter store"].Status)
	assert.FileExists(t, filepath.Join(base, "session-hooks.db"))
}

func TestHealthCheck_MalformedLogWarns(t *testing.T) {
	base := testutil.CreateTempDir(t)
	testutil.WriteSessionLog(t, filepath.Join(base, "sessions"),
		"[2026-03-14 09:00:05] /work/project-a",
		"not a log line",
	)
	hc := newHealthCheck(t, base)

	results, err := hc.Run(context.Background())
	require.NoError(t, err, "warnings do not fail the run")

	history := resultsByName(results)["Session history"]
	assert.Equal(t, CheckWarn, history.Status)
	assert.Contains(t, history.Detail, "1 logged session(s)")
	assert.ErrorContains(t, history.Err, "1 malformed line(s)")
}

func TestHealthCheck_UnusableBaseDir(t *testing.T) {
	hc := newHealthCheck(t, testutil.UnusableDir(t))

	results, err := hc.Run(context.Background())
	require.Error(t, err)

	byName := resultsByName(results)
	assert.Equal(t, CheckFail, byName["Session directories"].Status)
	assert.Equal(t, CheckFail, byName["Counter store"].Status)
	assert.Contains(t, err.Error(), "Session directories")
}

func TestHealthCheck_NoParentProcess(t *testing.T) {
	hc := newHealthCheck(t, testutil.CreateTempDir(t))
	hc.PPID = 0

	results, err := hc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CheckWarn, resultsByName(results)["Host process"].Status)
}
