package internal

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	// maxHookInputBytes caps the stdin payload; host payloads are small JSON objects.
	maxHookInputBytes = 1 << 20

	// hookInputTimeout bounds the wait for a payload when the host keeps stdin open.
	hookInputTimeout = 200 * time.Millisecond

	// DefaultSessionKey is used when no session identifier can be found.
	DefaultSessionKey = "default"
)

// HookInput is the optional JSON payload a host writes to a hook's stdin
type HookInput struct {
	SessionID     string `json:"session_id"`
	CWD           string `json:"cwd"`
	HookEventName string `json:"hook_event_name"`
	ToolName      string `json:"tool_name"`
}

// ReadHookInput decodes a payload from r. Terminals are never read, a reader
// that has not reached EOF within a short timeout is abandoned, and an empty
// or malformed payload yields a zero HookInput.
func ReadHookInput(r io.Reader) HookInput {
	return readHookInput(r, hookInputTimeout)
}

func readHookInput(r io.Reader, timeout time.Duration) HookInput {
	if r == nil {
		return HookInput{}
	}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return HookInput{}
	}

	data, err := readWithTimeout(io.LimitReader(r, maxHookInputBytes), timeout)
	if err != nil {
		LogDebug("hook input read failed: %v", err)
		return HookInput{}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return HookInput{}
	}

	var input HookInput
	if err := json.Unmarshal(data, &input); err != nil {
		LogDebug("hook input ignored: %v", err)
		return HookInput{}
	}
	return input
}

// readWithTimeout reads r to EOF. When that takes longer than timeout the
// reading goroutine is left behind; the hook process exits soon after.
func readWithTimeout(r io.Reader, timeout time.Duration) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- result{data, err}
	}()

	select {
	case res := <-done:
		return res.data, res.err
	case <-time.After(timeout):
		return nil, errors.Errorf("no end of input after %s", timeout)
	}
}

// ResolveSessionID picks the counter namespace: payload session id, then the
// configured environment variable, then the parent process id, then "default".
func ResolveSessionID(input HookInput, getenv func(string) string, envName string, ppid int) string {
	if id := strings.TrimSpace(input.SessionID); id != "" {
		return id
	}
	if getenv != nil && envName != "" {
		if id := strings.TrimSpace(getenv(envName)); id != "" {
			return id
		}
	}
	if ppid > 0 {
		return strconv.Itoa(ppid)
	}
	return DefaultSessionKey
}
