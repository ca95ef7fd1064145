package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// CmdResult holds the outcome of a command that was started.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunOpts holds optional parameters for a command execution.
type RunOpts struct {
	Dir    string            // working directory (optional)
	Env    map[string]string // extra environment variables (overlay)
	Stdin  io.Reader         // optional standard input
	Stdout io.Writer         // output is also streamed here when set
	Stderr io.Writer         // error output is also streamed here when set
}

// CommandRunner runs external commands.
type CommandRunner interface {
	// Run executes name with args. A process that exits non-zero is reported
	// through CmdResult.ExitCode with a nil error; the error is reserved for
	// failures to start (binary not found, ctx canceled, io failure).
	Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error)
}

// ExecRunner is the production CommandRunner built on os/exec.
type ExecRunner struct {
	log *zap.Logger
}

// New returns an ExecRunner that logs each invocation at debug level.
// A nil logger disables logging.
func New(log *zap.Logger) *ExecRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecRunner{log: log}
}

// Run executes the command, capturing stdout/stderr while streaming them to
// opts.Stdout/opts.Stderr when those are set.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin

	if len(opts.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = tee(&stdoutBuf, opts.Stdout)
	cmd.Stderr = tee(&stderrBuf, opts.Stderr)

	r.log.Debug("running command",
		zap.String("name", name),
		zap.Strings("args", args),
		zap.String("dir", opts.Dir))

	err := cmd.Run()

	result := CmdResult{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			r.log.Debug("command exited non-zero",
				zap.String("name", name),
				zap.Int("exit_code", result.ExitCode))
			return result, nil
		}
		r.log.Debug("command failed to run", zap.String("name", name), zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, err
	}

	return result, nil
}

// CommandLine renders name and args as a single display string.
func CommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}
