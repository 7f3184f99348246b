package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/process"
)

// CheckStatus is the outcome of one health check
type CheckStatus int

const (
	CheckOK CheckStatus = iota
	CheckWarn
	CheckFail
)

// CheckResult describes one health check
type CheckResult struct {
	Name   string
	Status CheckStatus
	Detail string
	Err    error
}

// HealthCheck runs the diagnostics behind the healthcheck command
type HealthCheck struct {
	Config *Config
	Paths  Paths
	Now    func() time.Time
	PPID   int
}

// Run executes every check in order. Failed checks are collected into the
// returned error; warnings are reported but do not fail the run.
func (h *HealthCheck) Run(ctx context.Context) ([]CheckResult, error) {
	checks := []func(context.Context) CheckResult{
		h.checkPaths,
		h.checkDirectories,
		h.checkCounter,
		h.checkSessions,
		h.checkLearned,
		h.checkHostProcess,
	}

	var (
		results []CheckResult
		result  *multierror.Error
	)
	for _, check := range checks {
		r := check(ctx)
		results = append(results, r)
		if r.Status == CheckFail {
			result = multierror.Append(result, errors.Wrap(r.Err, r.Name))
		}
	}
	return results, result.ErrorOrNil()
}

func (h *HealthCheck) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *HealthCheck) checkPaths(ctx context.Context) CheckResult {
	r := CheckResult{Name: "Base directory", Detail: h.Paths.BaseDir}
	if h.Paths.BaseDir == "" || !filepath.IsAbs(h.Paths.BaseDir) {
		r.Status = CheckFail
		r.Err = errors.Errorf("base directory %q is not absolute", h.Paths.BaseDir)
	}
	return r
}

func (h *HealthCheck) checkDirectories(ctx context.Context) CheckResult {
	r := CheckResult{Name: "Session directories", Detail: h.Paths.SessionsDir}
	if err := h.Paths.EnsureSessionDirs(); err != nil {
		r.Status, r.Err = CheckFail, err
		return r
	}

	scratch := filepath.Join(h.Paths.SessionsDir, ".healthcheck-"+ShortID())
	if err := WriteFile(scratch, "ok\n"); err != nil {
		r.Status, r.Err = CheckFail, err
		return r
	}
	if err := os.Remove(scratch); err != nil {
		r.Status, r.Err = CheckWarn, errors.Wrap(err, "failed to remove scratch file")
	}
	return r
}

func (h *HealthCheck) checkCounter(ctx context.Context) CheckResult {
	r := CheckResult{Name: "Counter store", Detail: h.Config.Counter.Backend}
	counter, err := h.Config.OpenCounter(ctx, h.Paths)
	if err != nil {
		r.Status, r.Err = CheckFail, err
		return r
	}
	defer func() {
		if err := counter.Close(); err != nil {
			LogDebug("Healthcheck counter close failed: %v", err)
		}
	}()

	key := "healthcheck-" + ShortID()
	if err := counterRoundTrip(ctx, counter, key); err != nil {
		r.Status, r.Err = CheckFail, err
	}
	return r
}

func counterRoundTrip(ctx context.Context, counter Counter, key string) error {
	for want := 1; want <= 2; want++ {
		got, err := counter.IncrementAndGet(ctx, key)
		if err != nil {
			return err
		}
		if got != want {
			return errors.Errorf("increment returned %d, want %d", got, want)
		}
	}
	if err := counter.Reset(ctx, key); err != nil {
		return err
	}
	got, err := counter.Get(ctx, key)
	if err != nil {
		return err
	}
	if got != 0 {
		return errors.Errorf("count after reset is %d, want 0", got)
	}
	return nil
}

func (h *HealthCheck) checkSessions(ctx context.Context) CheckResult {
	r := CheckResult{Name: "Session history"}
	store := NewSessionStore(h.Paths)

	markers, err := store.RecentMarkers(h.Config.Session.RecentDays, h.now())
	if err != nil {
		r.Status, r.Err = CheckFail, err
		return r
	}
	records, skipped, err := store.LoadRecords()
	if err != nil {
		r.Status, r.Err = CheckFail, err
		return r
	}

	r.Detail = fmt.Sprintf("%d recent marker(s), %d logged session(s)", len(markers), len(records))
	if skipped > 0 {
		r.Status = CheckWarn
		r.Err = errors.Errorf("%d malformed line(s) in %s", skipped, h.Paths.SessionLogPath())
	}
	return r
}

func (h *HealthCheck) checkLearned(ctx context.Context) CheckResult {
	r := CheckResult{Name: "Learned skills"}
	learned, err := NewSessionStore(h.Paths).LearnedSkills()
	if err != nil {
		r.Status, r.Err = CheckFail, err
		return r
	}
	r.Detail = fmt.Sprintf("%d file(s) in %s", len(learned), h.Paths.LearnedDir)
	return r
}

// checkHostProcess names the parent process; it only warns since the
// operator usually runs this from a shell rather than the assistant.
func (h *HealthCheck) checkHostProcess(ctx context.Context) CheckResult {
	r := CheckResult{Name: "Host process"}
	if h.PPID <= 0 {
		r.Status = CheckWarn
		r.Err = errors.New("no parent process")
		return r
	}
	proc, err := process.NewProcessWithContext(ctx, int32(h.PPID))
	if err != nil {
		r.Status, r.Err = CheckWarn, errors.Wrapf(err, "failed to inspect pid %d", h.PPID)
		return r
	}
	name, err := proc.NameWithContext(ctx)
	if err != nil {
		r.Status, r.Err = CheckWarn, errors.Wrapf(err, "failed to read name of pid %d", h.PPID)
		return r
	}
	r.Detail = fmt.Sprintf("%s (pid %d)", name, h.PPID)
	return r
}
