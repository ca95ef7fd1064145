package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/platform"
	"github.com/agentx-labs/agentboot/internal/runner"
)

// Hook runs a template's init script inside the repository.
type Hook struct {
	Runner runner.CommandRunner
	Out    io.Writer
	ErrOut io.Writer
	Log    *zap.Logger
}

// RunInitScript runs script (relative to dir) with dir as the working
// directory. Executable scripts run directly, others through sh. A missing
// script prints a warning and returns (false, nil); a non-zero exit is an
// E_SUBPROCESS error with the script's status. A script that resolves
// outside dir, directly or through a symlink, is E_INVALID_TEMPLATE and is
// never run.
func (h *Hook) RunInitScript(ctx context.Context, dir, script string) (bool, error) {
	path, err := scriptPath(dir, script)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		fmt.Fprintf(h.ErrOut, "Warning: init script %s not found; skipping.\n", script)
		return false, nil
	}

	name, args := "sh", []string{path}
	if platform.IsExecutable(info) {
		name, args = path, nil
	}

	fmt.Fprintf(h.Out, "Running %s...\n", script)
	if h.Log != nil {
		h.Log.Debug("running init script", zap.String("path", path), zap.String("dir", dir))
	}
	result, err := h.Runner.Run(ctx, name, args, runner.RunOpts{Dir: dir, Stdout: h.Out, Stderr: h.ErrOut})
	if err != nil {
		return false, errors.Wrap(errors.ESubprocess, "could not run init script "+script, err)
	}
	if result.ExitCode != 0 {
		return true, errors.Exited(errors.ESubprocess,
			fmt.Sprintf("init script %s exited with status %d", script, result.ExitCode),
			result.ExitCode, runner.CommandLine(name, args), "")
	}
	return true, nil
}

// scriptPath joins script onto dir and rejects results that leave dir.
func scriptPath(dir, script string) (string, error) {
	outside := errors.Newf(errors.EInvalidTemplate, "init script %s is outside the repository", script)
	if script == "" || filepath.IsAbs(script) || filepath.VolumeName(script) != "" {
		return "", outside
	}
	path := filepath.Join(dir, filepath.FromSlash(script))
	if !within(dir, path) {
		return "", outside
	}

	// Symlinks are checked against the resolved repository root.
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return path, nil
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil && !within(root, resolved) {
		return "", outside
	}
	return path, nil
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
