// Package toolrun runs the optional external query tools (xdg-mime, file,
// magika) with a bounded wait and capped output. Failures never surface as
// errors: a missing tool, a non-zero exit or a timeout all yield "".
package toolrun

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/arthur-debert/openwith/pkg/logging"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout bounds a single tool invocation
	DefaultTimeout = 2 * time.Second

	// DefaultMaxOutput caps captured stdout
	DefaultMaxOutput = 64 * 1024
)

// Well-known tool names
const (
	XdgMime = "xdg-mime"
	File    = "file"
	Magika  = "magika"
)

// Runner looks up and runs external tools
type Runner interface {
	// LookPath reports whether name resolves to an executable on PATH
	LookPath(name string) bool
	// Output runs name and returns its trimmed stdout, or "" on any failure
	Output(ctx context.Context, name string, args ...string) string
}

// Exec is the os/exec backed Runner
type Exec struct {
	timeout   time.Duration
	maxOutput int
	fs        filesystem.FS
	logger    zerolog.Logger
}

// New creates an Exec runner. Non-positive values fall back to the defaults.
func New(timeout time.Duration, maxOutput int) *Exec {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	return &Exec{
		timeout:   timeout,
		maxOutput: maxOutput,
		fs:        filesystem.NewOS(),
		logger:    logging.GetLogger("toolrun"),
	}
}

// LookPath searches PATH for a regular file with an exec bit
func (e *Exec) LookPath(name string) bool {
	return findExecutable(e.fs, os.Getenv("PATH"), name) != ""
}

// Output runs the tool with the configured timeout
func (e *Exec) Output(ctx context.Context, name string, args ...string) string {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	logging.LogToolCall(e.logger, name, args)

	out := newCappedWriter(e.maxOutput)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = nil
	cmd.WaitDelay = e.timeout

	if err := cmd.Run(); err != nil {
		e.logger.Debug().
			Err(err).
			Str("tool", name).
			Strs("args", args).
			Bool("timedOut", ctx.Err() == context.DeadlineExceeded).
			Msg("Tool returned no result")
		return ""
	}

	result := strings.TrimSpace(string(out.Bytes()))
	e.logger.Trace().
		Str("tool", name).
		Str("output", result).
		Bool("truncated", out.Truncated()).
		Msg("Tool output")
	return result
}

// findExecutable resolves name against a PATH value. Names containing a
// slash are checked directly.
func findExecutable(fsys filesystem.FS, pathEnv, name string) string {
	if name == "" {
		return ""
	}
	if strings.ContainsRune(name, '/') {
		if filesystem.IsExecutableFile(fsys, name) {
			return name
		}
		return ""
	}
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if filesystem.IsExecutableFile(fsys, candidate) {
			return candidate
		}
	}
	return ""
}

// cappedWriter keeps the first capBytes written and discards the rest
type cappedWriter struct {
	mu        sync.Mutex
	capBytes  int
	buf       []byte
	truncated bool
}

func newCappedWriter(capBytes int) *cappedWriter {
	return &cappedWriter{capBytes: capBytes}
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	room := w.capBytes - len(w.buf)
	if room <= 0 {
		w.truncated = w.truncated || len(p) > 0
		return len(p), nil
	}
	if len(p) > room {
		w.buf = append(w.buf, p[:room]...)
		w.truncated = true
		return len(p), nil
	}
	w.buf = append(w.buf, p...)
	return len(p), nil
}

func (w *cappedWriter) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.buf...)
}

func (w *cappedWriter) Truncated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.truncated
}
